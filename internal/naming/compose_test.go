package naming

import "testing"

func TestCompose(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		in     Name
		want   string
	}{
		{
			name:   "safe",
			format: DefaultFormat(),
			in:     Name{Multiplier: "3000", Sequence: 7, Safe: true, Creator: "JD", Description: "GetTripleEntriesBefore", DurationSeconds: 31},
			want:   "300007.TTS.JD.GetTripleEntriesBefore.31sec.mp4",
		},
		{
			name:   "unsafe labelled",
			format: DefaultFormat(),
			in:     Name{Multiplier: "1000", Sequence: 12, Safe: false, Creator: "AK", Description: "Only1295GetsExtra", DurationSeconds: 15},
			want:   "100012.NTTS.AK.Only1295GetsExtra.15sec.mp4",
		},
		{
			name:   "unsafe label omitted",
			format: Format{SequenceWidth: 4, SafeLabel: "TTS", Extension: ".mov"},
			in:     Name{Multiplier: "0001", Sequence: 3, Safe: false, Creator: "AK", Description: "Hurry", DurationSeconds: 9},
			want:   "00010003.AK.Hurry.9sec.mov",
		},
		{
			name:   "path separators stripped",
			format: DefaultFormat(),
			in:     Name{Multiplier: "2000", Sequence: 1, Safe: true, Creator: "J/D", Description: `..\Big/Win`, DurationSeconds: 5},
			want:   "200001.TTS.JD...BigWin.5sec.mp4",
		},
		{
			name:   "empty description and creator",
			format: DefaultFormat(),
			in:     Name{Multiplier: "1000", Sequence: 1, Safe: true, DurationSeconds: -4},
			want:   "100001.TTS.Ad.0sec.mp4",
		},
		{
			name:   "sequence prefix",
			format: Format{SequenceWidth: 2, SequencePrefix: "JD", SafeLabel: "TTS", UnsafeLabel: "NTTS", Extension: "mp4"},
			in:     Name{Multiplier: "5000", Sequence: 2, Safe: true, Creator: "JD", Description: "Win", DurationSeconds: 60},
			want:   "5000JD02.TTS.JD.Win.60sec.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.Compose(tt.in); got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeSequenceRoundTrip(t *testing.T) {
	formats := []Format{
		DefaultFormat(),
		{SequenceWidth: 4, SafeLabel: "TTS", Extension: "mp4"},
		{SequenceWidth: 2, SequencePrefix: "AK", SafeLabel: "TTS", UnsafeLabel: "NTTS", Extension: "mp4"},
	}
	for _, f := range formats {
		for _, m := range Multipliers {
			for _, seq := range []int{1, 9, 10, 99, 100, 4321} {
				name := f.Compose(Name{Multiplier: m, Sequence: seq, Safe: seq%2 == 0, Creator: "JD", Description: "Win", DurationSeconds: 30})
				got, ok := ParseSequence(name, m, f.SequencePrefix)
				if !ok || got != seq {
					t.Errorf("ParseSequence(%q) = %d, %v, want %d", name, got, ok, seq)
				}
				if next := Allocate(m, f.SequencePrefix, []string{name}, 1); next != seq+1 {
					t.Errorf("Allocate after %q = %d, want %d", name, next, seq+1)
				}
			}
		}
	}
}

func TestProposedNameOverride(t *testing.T) {
	p := ProposedName{SourceID: "1", Name: "100001.TTS.JD.Ad.5sec.mp4"}
	p.Override("100001.TTS.JD.Ad.5sec.mp4")
	if p.Edited {
		t.Error("Override() with identical name should not mark edited")
	}
	p.Override("custom.mp4")
	if !p.Edited || p.Name != "custom.mp4" {
		t.Errorf("Override() = %+v", p)
	}
}
