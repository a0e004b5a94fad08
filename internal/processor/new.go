package processor

import (
	"github.com/nguyentantai21042004/clipnamer/internal/logger"
	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/transcriber"
)

type implProcessor struct {
	classifier    *naming.Classifier
	format        naming.Format
	media         MediaToolkit
	transcriber   transcriber.Transcriber
	logger        logger.Logger
	tempDir       string
	maxConcurrent int
}

// Deps holds the collaborators of a Processor. Media and Transcriber may be
// nil, in which case every video is named with default classification.
type Deps struct {
	Classifier    *naming.Classifier
	Format        naming.Format
	Media         MediaToolkit
	Transcriber   transcriber.Transcriber
	Logger        logger.Logger
	TempDir       string
	MaxConcurrent int
}

// New creates a new Processor instance
func New(d Deps) Processor {
	if d.Classifier == nil {
		d.Classifier = naming.MustClassifier(naming.DefaultRules())
	}
	if d.Logger == nil {
		d.Logger = logger.Discard()
	}
	if d.Format == (naming.Format{}) {
		d.Format = naming.DefaultFormat()
	}
	if d.MaxConcurrent < 1 {
		d.MaxConcurrent = 1
	}
	return &implProcessor{
		classifier:    d.Classifier,
		format:        d.Format,
		media:         d.Media,
		transcriber:   d.Transcriber,
		logger:        d.Logger,
		tempDir:       d.TempDir,
		maxConcurrent: d.MaxConcurrent,
	}
}
