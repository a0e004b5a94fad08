package processor

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/storage"
)

type fakeProvider struct {
	mu        sync.Mutex
	videos    []naming.VideoCandidate
	names     []string
	content   map[string]string
	renameErr map[string]error
	renamed   map[string]string
	listErr   error
}

func (f *fakeProvider) ListVideos(_ context.Context, _ string) ([]naming.VideoCandidate, error) {
	return f.videos, f.listErr
}

func (f *fakeProvider) ListNames(_ context.Context, _ string) ([]string, error) {
	return f.names, nil
}

func (f *fakeProvider) Download(_ context.Context, id string, w io.Writer) error {
	body, ok := f.content[id]
	if !ok {
		return storage.ErrNotFound
	}
	_, err := io.WriteString(w, body)
	return err
}

func (f *fakeProvider) Rename(_ context.Context, id, newName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.renameErr[id]; err != nil {
		return err
	}
	if f.renamed == nil {
		f.renamed = make(map[string]string)
	}
	f.renamed[id] = newName
	return nil
}

// fakeMedia "extracts" audio by copying the downloaded file, so the fake
// transcriber reads the video content back as the transcript.
type fakeMedia struct {
	duration int
}

func (m *fakeMedia) ExtractAudio(_ context.Context, videoPath string) (string, error) {
	data, err := os.ReadFile(videoPath)
	if err != nil {
		return "", err
	}
	out := videoPath + ".wav"
	return out, os.WriteFile(out, data, 0o644)
}

func (m *fakeMedia) ProbeDuration(_ context.Context, _ string) (int, error) {
	return m.duration, nil
}

type fakeTranscriber struct {
	fail map[string]bool
}

func (t *fakeTranscriber) Transcribe(_ context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", err
	}
	text := string(data)
	if t.fail[text] {
		return "", errors.New("model crashed")
	}
	return text, nil
}

func newTestProcessor(t *testing.T, media MediaToolkit, tr *fakeTranscriber) Processor {
	t.Helper()
	d := Deps{
		Format:        naming.DefaultFormat(),
		Media:         media,
		TempDir:       t.TempDir(),
		MaxConcurrent: 2,
	}
	if tr != nil {
		d.Transcriber = tr
	}
	return New(d)
}

func defaultOptions() ProposeOptions {
	return ProposeOptions{Settings: naming.Settings{
		CreatorCode:       "JD",
		StartingSequence:  1,
		DefaultMultiplier: naming.MultiplierEvergreen,
	}}
}

func TestProposeComposesNames(t *testing.T) {
	provider := &fakeProvider{
		videos: []naming.VideoCandidate{
			{ID: "a", DisplayName: "a.mp4", KnownDurationSeconds: 32},
			{ID: "b", DisplayName: "b.mp4", KnownDurationSeconds: 18},
			{ID: "c", DisplayName: "c.mp4"},
		},
		names: []string{"100007.TTS.JD.Old.10sec.mp4", "a.mp4", "b.mp4", "c.mp4"},
		content: map[string]string{
			"a": "Earn 5x points on dining this weekend",
			"b": "Pay just $9.95 today to join",
			"c": "Win a trip. No payment needed.",
		},
	}
	p := newTestProcessor(t, &fakeMedia{duration: 27}, &fakeTranscriber{})

	got, err := p.Propose(context.Background(), provider, "folder", defaultOptions())
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	want := []string{
		"500001.TTS.JD.EarnPointsDiningWeekend.32sec.mp4",
		"100008.NTTS.JD.Pay995TodayJoin.18sec.mp4",
		"100009.TTS.JD.WinTripPaymentNeeded.27sec.mp4",
	}
	if len(got) != len(want) {
		t.Fatalf("Propose() returned %d proposals, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Proposed.Name != w {
			t.Errorf("proposal %d name = %q, want %q", i, got[i].Proposed.Name, w)
		}
		if got[i].Proposed.SourceID != provider.videos[i].ID {
			t.Errorf("proposal %d source = %q, want %q", i, got[i].Proposed.SourceID, provider.videos[i].ID)
		}
		if got[i].TranscriptError != "" {
			t.Errorf("proposal %d transcript error = %q", i, got[i].TranscriptError)
		}
	}
}

func TestProposeDegradesWithoutTranscript(t *testing.T) {
	provider := &fakeProvider{
		videos: []naming.VideoCandidate{
			{ID: "a", DisplayName: "a.mp4", KnownDurationSeconds: 12},
			{ID: "b", DisplayName: "b.mp4", KnownDurationSeconds: 40},
			{ID: "gone", DisplayName: "gone.mp4", KnownDurationSeconds: 5},
		},
		content: map[string]string{"a": "broken", "b": "Triple points all week"},
	}
	p := newTestProcessor(t, &fakeMedia{}, &fakeTranscriber{fail: map[string]bool{"broken": true}})

	opts := defaultOptions()
	opts.Settings.DefaultMultiplier = naming.Multiplier2x
	got, err := p.Propose(context.Background(), provider, "folder", opts)
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	if got[0].Proposed.Name != "200001.TTS.JD.Ad.12sec.mp4" {
		t.Errorf("failed transcript name = %q", got[0].Proposed.Name)
	}
	if got[0].TranscriptError == "" {
		t.Error("expected a soft transcript error for a failed transcription")
	}
	if got[1].Proposed.Name != "300001.TTS.JD.TriplePointsWeek.40sec.mp4" {
		t.Errorf("classified name = %q", got[1].Proposed.Name)
	}
	if got[2].Proposed.Name != "200002.TTS.JD.Ad.5sec.mp4" {
		t.Errorf("missing download name = %q", got[2].Proposed.Name)
	}
	if !strings.Contains(got[2].TranscriptError, storage.ErrNotFound.Error()) {
		t.Errorf("missing download error = %q", got[2].TranscriptError)
	}
}

func TestProposeWithoutTranscriber(t *testing.T) {
	provider := &fakeProvider{
		videos: []naming.VideoCandidate{{ID: "a", DisplayName: "a.mp4", KnownDurationSeconds: 9}},
	}
	p := New(Deps{})

	got, err := p.Propose(context.Background(), provider, "folder", defaultOptions())
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if got[0].Proposed.Name != "100001.TTS.JD.Ad.9sec.mp4" {
		t.Errorf("name = %q", got[0].Proposed.Name)
	}
	if got[0].TranscriptError == "" {
		t.Error("expected transcript error when no transcriber is configured")
	}
}

func TestProposeOnlySelected(t *testing.T) {
	provider := &fakeProvider{
		videos: []naming.VideoCandidate{
			{ID: "a", DisplayName: "a.mp4", KnownDurationSeconds: 1},
			{ID: "b", DisplayName: "b.mp4", KnownDurationSeconds: 2},
		},
	}
	opts := defaultOptions()
	opts.Only = []string{"b"}

	got, err := New(Deps{}).Propose(context.Background(), provider, "folder", opts)
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if len(got) != 1 || got[0].Video.ID != "b" {
		t.Errorf("Propose() = %+v, want only b", got)
	}
}

func TestProposeRejectsInvalidSettings(t *testing.T) {
	p := New(Deps{})
	opts := defaultOptions()
	opts.Settings.StartingSequence = 0

	_, err := p.Propose(context.Background(), &fakeProvider{}, "folder", opts)
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("Propose() error = %v, want ErrInvalidSettings", err)
	}
}

func TestProposeListError(t *testing.T) {
	p := New(Deps{})
	provider := &fakeProvider{listErr: storage.ErrUnauthenticated}

	_, err := p.Propose(context.Background(), provider, "folder", defaultOptions())
	if !errors.Is(err, storage.ErrUnauthenticated) {
		t.Errorf("Propose() error = %v, want ErrUnauthenticated", err)
	}
}

func TestProposeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	provider := &fakeProvider{videos: []naming.VideoCandidate{{ID: "a", DisplayName: "a.mp4"}}}

	_, err := New(Deps{}).Propose(ctx, provider, "folder", defaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Propose() error = %v, want context.Canceled", err)
	}
}

func TestRecomposeOverridesAndDiscardsEdits(t *testing.T) {
	provider := &fakeProvider{names: []string{"400003.TTS.JD.Old.1sec.mp4"}}
	p := New(Deps{})

	proposals := []Proposal{
		{
			Video:           naming.VideoCandidate{ID: "a"},
			Classification:  naming.Classification{Safe: true, Description: "Bonus", Multiplier: naming.MultiplierEvergreen},
			DurationSeconds: 10,
			Proposed:        naming.ProposedName{SourceID: "a", Name: "custom.mp4", Edited: true},
		},
		{
			Video:           naming.VideoCandidate{ID: "b"},
			Classification:  naming.Classification{Safe: false, Description: "Sale", Multiplier: naming.MultiplierEvergreen},
			DurationSeconds: 20,
		},
	}
	opts := defaultOptions()
	opts.Multipliers = map[string]naming.Multiplier{"b": naming.Multiplier4x, "a": "bogus"}

	got, err := p.Recompose(context.Background(), provider, "folder", proposals, opts)
	if err != nil {
		t.Fatalf("Recompose() error = %v", err)
	}

	if got[0].Proposed.Name != "100001.TTS.JD.Bonus.10sec.mp4" || got[0].Proposed.Edited {
		t.Errorf("first proposal = %+v", got[0].Proposed)
	}
	if got[1].Proposed.Name != "400004.NTTS.JD.Sale.20sec.mp4" {
		t.Errorf("second proposal name = %q", got[1].Proposed.Name)
	}
	if proposals[0].Proposed.Name != "custom.mp4" {
		t.Error("Recompose() modified its input")
	}
}

func TestSequencesNeverRepeatWithinBatch(t *testing.T) {
	provider := &fakeProvider{names: []string{"100003.TTS.JD.X.1sec.mp4"}}
	p := New(Deps{})

	var proposals []Proposal
	for _, id := range []string{"a", "b", "c", "d"} {
		proposals = append(proposals, Proposal{
			Video:          naming.VideoCandidate{ID: id},
			Classification: naming.Classification{Safe: true, Description: "Same", Multiplier: naming.MultiplierEvergreen},
		})
	}

	got, err := p.Recompose(context.Background(), provider, "folder", proposals, defaultOptions())
	if err != nil {
		t.Fatalf("Recompose() error = %v", err)
	}

	seen := make(map[int]bool)
	for i, prop := range got {
		if seen[prop.Sequence] {
			t.Errorf("sequence %d repeated", prop.Sequence)
		}
		seen[prop.Sequence] = true
		if want := 4 + i; prop.Sequence != want {
			t.Errorf("proposal %d sequence = %d, want %d", i, prop.Sequence, want)
		}
	}
}

func TestClassify(t *testing.T) {
	got := New(Deps{}).Classify("Quadruple rewards when you checkout")
	if got.Safe || got.Multiplier != naming.Multiplier4x {
		t.Errorf("Classify() = %+v", got)
	}
}
