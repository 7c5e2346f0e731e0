package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"github.com/ElishaSamPeterPrabhu/workbuddy/fs"
	"github.com/cespare/xxhash/v2"
)

// MaxRounds bounds every AI-directed session.
const MaxRounds = 10

// Session outcomes.
const (
	OutcomeStop      = "stop"
	OutcomeExhausted = "exhausted"
	OutcomeMaxRounds = "max_rounds"
)

// SessionResult is what a completed session hands back to the caller.
type SessionResult struct {
	Query   string
	Outcome string
	Rounds  []workbuddy.SearchRound
	Results []workbuddy.FileRecord

	// LastResults holds the matches of the final executed search round.
	LastResults []workbuddy.FileRecord

	Summary string
}

// Session drives an AI-directed multi-round search. The advisor sees a
// fresh snapshot of the session each round and answers with exactly one
// command; the controller validates and executes it. The session always
// terminates: rounds are capped, and every path through a round either
// consumes the counter or stops.
type Session struct {
	Advisor  workbuddy.Advisor
	Executor *Executor
	Index    workbuddy.LocationIndex
	FS       workbuddy.FileSystem

	// History, when set, records the session. Failures are logged and
	// never interrupt a round.
	History workbuddy.SessionService

	Logger *slog.Logger

	// Quick and Extended override the default deadlines when positive.
	Quick    time.Duration
	Extended time.Duration
}

// Run executes one session for the given query.
func (s *Session) Run(ctx context.Context, query string) (*SessionResult, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	candidates := newDirSet(s.Index.Candidates())
	searched := newDirSet(nil)
	expanded := newDirSet(nil)

	result := &SessionResult{Query: query, Outcome: OutcomeMaxRounds}
	seen := map[string]bool{}
	var lastResults []workbuddy.FileRecord

	record := s.beginHistory(ctx, query, logger)

	for round := 1; round <= MaxRounds; round++ {
		available := candidates.minus(searched)
		rc := workbuddy.RoundContext{
			UserQuery:            query,
			LastResults:          lastResults,
			History:              result.Rounds,
			Round:                round,
			CandidateDirectories: available,
			SearchedDirectories:  searched.sorted(),
			ExhaustedCandidates:  len(available) == 0,
		}

		cmd, err := s.Advisor.NextCommand(ctx, rc)
		if err != nil {
			s.endHistory(ctx, record, result, logger)
			return nil, err
		}

		// Additions ride along with any command and apply before the
		// command itself is validated.
		for _, dir := range cmd.AddCandidates {
			resolved := s.resolveDirectory(dir)
			if s.FS.FolderExists(resolved) {
				candidates.add(resolved)
			}
		}

		var sr workbuddy.SearchRound
		sr.Round = round

		switch cmd.Kind {
		case workbuddy.CommandStop, workbuddy.CommandUnknown:
			// A stop is not a round: the history keeps searches and
			// candidate-set changes only.
			result.LastResults = lastResults
			result.Outcome = OutcomeStop
			result.Summary = s.summarize(cmd.Message, query, result.Results)
			s.endHistory(ctx, record, result, logger)
			return result, nil

		case workbuddy.CommandSearch:
			dir := s.resolveDirectory(cmd.Directory)
			sr.Directory = dir
			sr.Pattern = cmd.Pattern

			if searched.contains(dir) || !candidates.contains(dir) {
				// The round is recorded and the counter consumed, but the
				// last valid search's results stay visible to the advisor.
				sr.Note = fmt.Sprintf("%s is not in the candidate directory list", dir)
				logger.Warn("search rejected", "directory", dir, "round", round)
				result.Rounds = append(result.Rounds, sr)
				s.recordRound(ctx, record, sr, logger)
				continue
			}

			resp := s.search(ctx, dir, cmd.Pattern, cmd.Extended)
			searched.add(dir)
			sr.Results = resp.Results
			if !resp.Success {
				sr.Note = resp.Error
			}
			lastResults = resp.Results
			for _, rec := range resp.Results {
				if !seen[rec.Path] {
					seen[rec.Path] = true
					result.Results = append(result.Results, rec)
				}
			}
			result.Rounds = append(result.Rounds, sr)
			s.recordRound(ctx, record, sr, logger)

			if len(candidates.minus(searched)) == 0 {
				result.LastResults = lastResults
				result.Outcome = OutcomeExhausted
				result.Summary = s.summarize(
					"All candidate directories have been searched.",
					query, result.Results)
				s.endHistory(ctx, record, result, logger)
				return result, nil
			}

		case workbuddy.CommandExpandSubfolders:
			dir := s.resolveDirectory(cmd.Directory)
			sr.Directory = dir
			if expanded.contains(dir) {
				sr.Note = fmt.Sprintf("subfolders of %s already listed", dir)
			} else {
				subs, err := s.FS.ExpandSubfolders(ctx, dir)
				if err != nil {
					sr.Note = workbuddy.ErrorMessage(err)
				} else {
					expanded.add(dir)
					for _, sub := range subs {
						candidates.add(sub)
					}
					sr.Note = fmt.Sprintf("added %d subfolders of %s", len(subs), dir)
				}
			}
			result.Rounds = append(result.Rounds, sr)
			s.recordRound(ctx, record, sr, logger)

		case workbuddy.CommandEnumerateSubtree:
			parent := s.resolveDirectory(cmd.ParentDirectory)
			sr.Directory = parent
			sr.Pattern = cmd.Pattern
			entries, err := s.FS.EnumerateSubtree(ctx, parent, cmd.Pattern, cmd.Depth)
			if err != nil {
				sr.Note = workbuddy.ErrorMessage(err)
			} else {
				// A fresh candidate generation: previously searched
				// directories become searchable again.
				candidates = newDirSet(entries)
				searched = newDirSet(nil)
				sr.Note = fmt.Sprintf("candidate directories replaced with %d entries under %s", len(entries), parent)
			}
			result.Rounds = append(result.Rounds, sr)
			s.recordRound(ctx, record, sr, logger)

		case workbuddy.CommandAddCandidates:
			sr.Note = fmt.Sprintf("added %d candidate directories", len(cmd.AddCandidates))
			result.Rounds = append(result.Rounds, sr)
			s.recordRound(ctx, record, sr, logger)
		}
	}

	result.LastResults = lastResults
	result.Summary = s.summarize("Maximum search rounds reached.", query, result.Results)
	s.endHistory(ctx, record, result, logger)
	return result, nil
}

// search runs the quick phase and, when the command opted in, retries
// with the extended deadline after a timeout or an empty quick round.
func (s *Session) search(ctx context.Context, dir, pattern string, extended bool) workbuddy.SearchResponse {
	quick, long := s.Quick, s.Extended
	if quick <= 0 {
		quick = QuickTimeout
	}
	if long <= 0 {
		long = ExtendedTimeout
	}

	filter := workbuddy.SearchFilter{
		Pattern: pattern,
		Path:    dir,
		Limit:   DefaultLimit,
	}
	resp := s.Executor.Execute(ctx, filter, quick)
	if extended && (!resp.Success || resp.Count == 0) {
		resp = s.Executor.Execute(ctx, filter, long)
	}
	return resp
}

// resolveDirectory maps symbolic and relative directory names to
// absolute paths. Well-known names go through the location index,
// "." and "./" mean the current directory, and anything else relative
// resolves against it.
func (s *Session) resolveDirectory(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return dir
	}
	if wk, ok := s.Index.WellKnown(strings.ToLower(dir)); ok {
		return wk
	}
	if dir == "." || dir == "./" {
		if cwd, err := os.Getwd(); err == nil {
			return cwd
		}
		return dir
	}
	dir = fs.ExpandHome(dir)
	if !filepath.IsAbs(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			return abs
		}
	}
	return filepath.Clean(dir)
}

func (s *Session) summarize(note, query string, records []workbuddy.FileRecord) string {
	summary := workbuddy.Summarize(query, records)
	if note != "" {
		return note + "\n" + summary
	}
	return summary
}

// beginHistory opens a persisted session record, if a store is wired.
func (s *Session) beginHistory(ctx context.Context, query string, logger *slog.Logger) *workbuddy.Session {
	if s.History == nil {
		return nil
	}
	sess := &workbuddy.Session{Query: query, StartedAt: time.Now()}
	if err := s.History.CreateSession(ctx, sess); err != nil {
		logger.Warn("session history unavailable", "error", err)
		return nil
	}
	return sess
}

func (s *Session) recordRound(ctx context.Context, sess *workbuddy.Session, sr workbuddy.SearchRound, logger *slog.Logger) {
	if s.History == nil || sess == nil {
		return
	}
	rr := &workbuddy.RoundRecord{
		SessionID:   sess.ID,
		Round:       sr.Round,
		Directory:   sr.Directory,
		Pattern:     sr.Pattern,
		Note:        sr.Note,
		ResultCount: len(sr.Results),
		ResultsHash: fingerprint(sr.Results),
	}
	if err := s.History.CreateRound(ctx, rr); err != nil {
		logger.Warn("round not recorded", "round", sr.Round, "error", err)
	}
}

func (s *Session) endHistory(ctx context.Context, sess *workbuddy.Session, result *SessionResult, logger *slog.Logger) {
	if s.History == nil || sess == nil {
		return
	}
	if err := s.History.EndSession(ctx, sess.ID, result.Outcome, len(result.Rounds)); err != nil {
		logger.Warn("session not closed", "session", sess.ID, "error", err)
	}
}

// fingerprint hashes the result paths of a round so repeat searches of a
// directory can be compared without storing the paths themselves.
func fingerprint(records []workbuddy.FileRecord) string {
	if len(records) == 0 {
		return ""
	}
	h := xxhash.New()
	for _, rec := range records {
		h.WriteString(rec.Path)
		h.WriteString("\n")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// dirSet is an insertion-ordered set of directory paths.
type dirSet struct {
	order []string
	index map[string]bool
}

func newDirSet(dirs []string) *dirSet {
	s := &dirSet{index: map[string]bool{}}
	for _, d := range dirs {
		s.add(d)
	}
	return s
}

func (s *dirSet) add(dir string) {
	if s.index[dir] {
		return
	}
	s.index[dir] = true
	s.order = append(s.order, dir)
}

func (s *dirSet) contains(dir string) bool { return s.index[dir] }

// minus returns the members of s not in other, preserving insertion order.
func (s *dirSet) minus(other *dirSet) []string {
	var out []string
	for _, d := range s.order {
		if !other.index[d] {
			out = append(out, d)
		}
	}
	return out
}

func (s *dirSet) sorted() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
