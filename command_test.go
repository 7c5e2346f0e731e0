package workbuddy_test

import (
	"testing"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	t.Run("parses file_search action", func(t *testing.T) {
		t.Parallel()

		cmd := workbuddy.ParseCommand([]byte(`{"action": "file_search", "directory": "/home/user/Documents", "pattern": "*.pdf"}`))
		assert.Equal(t, workbuddy.CommandSearch, cmd.Kind)
		assert.Equal(t, "/home/user/Documents", cmd.Directory)
		assert.Equal(t, "*.pdf", cmd.Pattern)
	})

	t.Run("accepts search action aliases", func(t *testing.T) {
		t.Parallel()

		for _, action := range []string{"search", "find", "search_files_recursive", "list_files"} {
			cmd := workbuddy.ParseCommand([]byte(`{"action": "` + action + `", "directory": "/tmp"}`))
			assert.Equal(t, workbuddy.CommandSearch, cmd.Kind, "action %q", action)
		}
	})

	t.Run("missing action with directory is a search", func(t *testing.T) {
		t.Parallel()

		cmd := workbuddy.ParseCommand([]byte(`{"directory": "/tmp", "pattern": "report"}`))
		assert.Equal(t, workbuddy.CommandSearch, cmd.Kind)
	})

	t.Run("subfolders flag selects expand", func(t *testing.T) {
		t.Parallel()

		cmd := workbuddy.ParseCommand([]byte(`{"action": "file_search", "directory": "/home/user", "subfolders": true}`))
		assert.Equal(t, workbuddy.CommandExpandSubfolders, cmd.Kind)
		assert.Equal(t, "/home/user", cmd.Directory)
	})

	t.Run("candidate_directory_request defaults pattern and depth", func(t *testing.T) {
		t.Parallel()

		cmd := workbuddy.ParseCommand([]byte(`{"action": "candidate_directory_request", "parent_directory": "/home/user"}`))
		assert.Equal(t, workbuddy.CommandEnumerateSubtree, cmd.Kind)
		assert.Equal(t, "/home/user", cmd.ParentDirectory)
		assert.Equal(t, "*", cmd.Pattern)
		assert.Equal(t, 1, cmd.Depth)
	})

	t.Run("additions alone are add_candidates", func(t *testing.T) {
		t.Parallel()

		cmd := workbuddy.ParseCommand([]byte(`{"add_candidate_directories": ["/mnt/share", "/opt/data"]}`))
		assert.Equal(t, workbuddy.CommandAddCandidates, cmd.Kind)
		assert.Equal(t, []string{"/mnt/share", "/opt/data"}, cmd.AddCandidates)
	})

	t.Run("additions ride along with a search", func(t *testing.T) {
		t.Parallel()

		cmd := workbuddy.ParseCommand([]byte(`{"action": "search", "directory": "/mnt/share", "add_candidate_directories": ["/mnt/share"]}`))
		assert.Equal(t, workbuddy.CommandSearch, cmd.Kind)
		assert.Equal(t, []string{"/mnt/share"}, cmd.AddCandidates)
	})

	t.Run("stop carries the AI message", func(t *testing.T) {
		t.Parallel()

		cmd := workbuddy.ParseCommand([]byte(`{"action": "stop", "ai_response": "Found what you asked for."}`))
		assert.Equal(t, workbuddy.CommandStop, cmd.Kind)
		assert.Equal(t, "Found what you asked for.", cmd.Message)
	})

	t.Run("extended_search flag is preserved", func(t *testing.T) {
		t.Parallel()

		cmd := workbuddy.ParseCommand([]byte(`{"action": "search", "directory": "/tmp", "extended_search": true}`))
		assert.True(t, cmd.Extended)
	})

	t.Run("malformed JSON is unknown with raw text", func(t *testing.T) {
		t.Parallel()

		cmd := workbuddy.ParseCommand([]byte("I could not decide what to do next."))
		assert.Equal(t, workbuddy.CommandUnknown, cmd.Kind)
		assert.Equal(t, "I could not decide what to do next.", cmd.Message)
	})

	t.Run("unrecognized action is unknown", func(t *testing.T) {
		t.Parallel()

		cmd := workbuddy.ParseCommand([]byte(`{"action": "reticulate_splines"}`))
		assert.Equal(t, workbuddy.CommandUnknown, cmd.Kind)
	})
}
