package journal

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"moodscribe/internal/mood"
)

// Analyzer is the classifier gateway contract.
type Analyzer interface {
	AnalyzeText(ctx context.Context, entry string) (mood.Analysis, error)
	AnalyzeFace(ctx context.Context, mimeType string, data []byte) (mood.Analysis, error)
}

// Suggester is the suggestion gateway contract.
type Suggester interface {
	Suggest(ctx context.Context, moodName, entryText string) (mood.Suggestions, error)
}

// CaptureStore archives submitted face photos. Optional.
type CaptureStore interface {
	Put(ctx context.Context, submissionID, mimeType string, content []byte) (string, error)
}

// State names the phases of a submission.
type State string

const (
	StateClassifying      State = "classifying"
	StateClassified       State = "classified"
	StateAnalysisFailed   State = "analysis_failed"
	StateSaving           State = "saving"
	StateSaved            State = "saved"
	StateSaveFailed       State = "save_failed"
	StateSuggestionsReady State = "suggestions_ready"
)

// Event is a submission state transition pushed to subscribers.
type Event struct {
	SubmissionID string            `json:"submissionId"`
	State        State             `json:"state"`
	Entry        *Entry            `json:"entry,omitempty"`
	Suggestions  *mood.Suggestions `json:"suggestions,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// Orchestrator coordinates one submission at a time per call:
// classification, optimistic insertion into the session list, background
// persistence, background suggestion fetch, and reconciliation. It is the
// only component that mutates the session list.
type Orchestrator struct {
	analyzer  Analyzer
	suggester Suggester
	store     Store
	captures  CaptureStore
	session   *Session

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

func NewOrchestrator(analyzer Analyzer, suggester Suggester, store Store) *Orchestrator {
	return &Orchestrator{
		analyzer:  analyzer,
		suggester: suggester,
		store:     store,
		session:   NewSession(),
		subs:      make(map[int]chan Event),
	}
}

// AttachCaptureStore enables best-effort photo archival.
func (o *Orchestrator) AttachCaptureStore(cs CaptureStore) { o.captures = cs }

// LoadHistory seeds the session list from the store.
func (o *Orchestrator) LoadHistory(ctx context.Context) {
	o.session.Seed(o.store.ListAll(ctx))
}

// Entries returns the current session list in display order.
func (o *Orchestrator) Entries() []Entry {
	return o.session.Snapshot()
}

// Subscribe returns a channel of submission events. The subscription ends
// when ctx is canceled. Slow subscribers drop events rather than blocking
// a submission.
func (o *Orchestrator) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, 32)
	o.subMu.Lock()
	id := o.nextSub
	o.nextSub++
	o.subs[id] = ch
	o.subMu.Unlock()

	go func() {
		<-ctx.Done()
		o.subMu.Lock()
		delete(o.subs, id)
		close(ch)
		o.subMu.Unlock()
	}()
	return ch
}

func (o *Orchestrator) broadcast(ev Event) {
	o.subMu.Lock()
	defer o.subMu.Unlock()
	for _, ch := range o.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Submission tracks one in-flight submission through its terminal state.
type Submission struct {
	ID string

	analysisDone chan struct{}
	analysis     mood.Analysis
	analysisErr  error

	done  chan struct{}
	state State
	entry *Entry
}

// WaitAnalysis blocks until classification resolves and returns its result.
func (s *Submission) WaitAnalysis(ctx context.Context) (mood.Analysis, error) {
	select {
	case <-ctx.Done():
		return mood.Analysis{}, ctx.Err()
	case <-s.analysisDone:
		return s.analysis, s.analysisErr
	}
}

// Wait blocks until all background work for the submission has finished
// (persistence, suggestion merge, and the best-effort durability patch)
// and returns the terminal state.
func (s *Submission) Wait(ctx context.Context) (State, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-s.done:
		return s.state, nil
	}
}

// Entry returns the final entry after Wait, if one was saved.
func (s *Submission) Entry() *Entry { return s.entry }

type request struct {
	text      string
	photoMIME string
	photoData []byte
}

// SubmitText starts a text submission. Input validation is the only
// synchronous failure; everything past it is asynchronous.
func (o *Orchestrator) SubmitText(ctx context.Context, entry string) (*Submission, error) {
	trimmed := strings.TrimSpace(entry)
	if len(trimmed) < mood.MinEntryLength {
		return nil, &mood.ValidationError{Msg: "Please write a bit more in your journal entry."}
	}
	return o.submit(ctx, request{text: trimmed}), nil
}

// SubmitFace starts an image submission.
func (o *Orchestrator) SubmitFace(ctx context.Context, mimeType string, data []byte) (*Submission, error) {
	if len(data) == 0 {
		return nil, &mood.ValidationError{Msg: "No photo provided for analysis."}
	}
	return o.submit(ctx, request{photoMIME: mimeType, photoData: data}), nil
}

func (o *Orchestrator) submit(ctx context.Context, req request) *Submission {
	sub := &Submission{
		ID:           newSubmissionID(),
		analysisDone: make(chan struct{}),
		done:         make(chan struct{}),
	}
	o.broadcast(Event{SubmissionID: sub.ID, State: StateClassifying})
	// A submission abandoned by the client is allowed to complete in the
	// background; only its events go unobserved.
	go o.run(context.WithoutCancel(ctx), sub, req)
	return sub
}

func (o *Orchestrator) run(ctx context.Context, sub *Submission, req request) {
	defer close(sub.done)

	var (
		analysis  mood.Analysis
		err       error
		entryText string
	)
	if len(req.photoData) > 0 {
		analysis, err = o.analyzer.AnalyzeFace(ctx, req.photoMIME, req.photoData)
		entryText = "Facial analysis on " + time.Now().Format("Jan 2, 2006 3:04 PM")
	} else {
		analysis, err = o.analyzer.AnalyzeText(ctx, req.text)
		entryText = req.text
	}
	if err != nil {
		sub.analysisErr = err
		close(sub.analysisDone)
		sub.state = StateAnalysisFailed
		o.broadcast(Event{SubmissionID: sub.ID, State: StateAnalysisFailed, Error: err.Error()})
		return
	}
	sub.analysis = analysis
	close(sub.analysisDone)
	o.broadcast(Event{SubmissionID: sub.ID, State: StateClassified})

	photoKey := ""
	if len(req.photoData) > 0 && o.captures != nil {
		key, err := o.captures.Put(ctx, sub.ID, req.photoMIME, req.photoData)
		if err != nil {
			log.Printf("journal: photo archive for %s skipped: %v", sub.ID, err)
		} else {
			photoKey = key
		}
	}

	// Optimistic insert: the entry is visible before the store write confirms.
	provisional := Entry{
		ID:           placeholderID(),
		CreatedAt:    time.Now(),
		JournalEntry: entryText,
		Mood:         analysis.Mood,
		MoodScore:    analysis.MoodScore,
		PhotoKey:     photoKey,
		Pending:      true,
	}
	key := o.session.Insert(provisional)
	o.broadcast(Event{SubmissionID: sub.ID, State: StateSaving, Entry: &provisional})

	type appendOutcome struct {
		res AppendResult
		err error
	}
	appendCh := make(chan appendOutcome, 1)
	go func() {
		res, err := o.store.Append(ctx, Draft{
			JournalEntry: entryText,
			Mood:         analysis.Mood,
			MoodScore:    analysis.MoodScore,
			PhotoKey:     photoKey,
		})
		appendCh <- appendOutcome{res, err}
	}()

	type suggestOutcome struct {
		sugg    mood.Suggestions
		err     error
		fetched bool
	}
	suggestCh := make(chan suggestOutcome, 1)
	if analysis.IsSentinel() {
		// No signal: no suggestion traffic, fields stay absent.
		suggestCh <- suggestOutcome{}
	} else {
		go func() {
			sugg, err := o.suggester.Suggest(ctx, analysis.Mood, req.text)
			suggestCh <- suggestOutcome{sugg, err, true}
		}()
	}

	// A suggestion result that resolves first sits buffered in suggestCh;
	// it is applied only after the append confirms and the placeholder id
	// has been substituted. Applying it to the placeholder and losing it on
	// substitution is the bug class this ordering forecloses.
	ap := <-appendCh
	if ap.err != nil {
		o.session.Remove(key)
		sub.state = StateSaveFailed
		o.broadcast(Event{SubmissionID: sub.ID, State: StateSaveFailed, Error: ap.err.Error()})
		// An in-flight suggestion fetch completes into the buffered channel
		// and is discarded; there is no patch target.
		return
	}
	o.session.Confirm(key, ap.res.ID, ap.res.CreatedAt)
	if saved, ok := o.session.Get(key); ok {
		o.broadcast(Event{SubmissionID: sub.ID, State: StateSaved, Entry: &saved})
	}

	so := <-suggestCh
	if so.fetched {
		switch {
		case so.err != nil:
			// Degrade gracefully: the suggestion section is simply omitted.
			log.Printf("journal: suggestions for %s unavailable: %v", sub.ID, so.err)
		case !so.sugg.Empty():
			o.session.Merge(key, so.sugg)
			if merged, ok := o.session.Get(key); ok {
				o.broadcast(Event{SubmissionID: sub.ID, State: StateSuggestionsReady, Entry: &merged, Suggestions: &so.sugg})
			}
			// Best-effort durability: the in-memory merge stands even if the
			// remote patch fails.
			if err := o.store.Update(ctx, ap.res.ID, so.sugg); err != nil {
				log.Printf("journal: suggestion patch for %s not persisted: %v", ap.res.ID, err)
			}
		}
	}

	if final, ok := o.session.Get(key); ok {
		sub.entry = &final
	}
	sub.state = StateSaved
}

var submissionSeq atomic.Int64

func newSubmissionID() string {
	return fmt.Sprintf("sub-%d-%d", time.Now().UnixMilli(), submissionSeq.Add(1))
}

var placeholderSeq atomic.Int64

// placeholderID generates a locally unique id for an entry pending store
// confirmation. Each submission carries its own placeholder so concurrent
// submissions interleave safely in the list.
func placeholderID() string {
	return fmt.Sprintf("optimistic-%d-%d", time.Now().UnixMilli(), placeholderSeq.Add(1))
}
