package navigation

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
)

// Exclusion records a page left out of the tree and the rule responsible.
type Exclusion struct {
	URL   string
	Rule  Rule
	Entry string
}

// BuildReport summarizes one navigation build.
type BuildReport struct {
	BuildID  string
	Included []string
	Excluded []Exclusion
	Duration time.Duration
}

// Builder turns pages into a navigation Tree.
type Builder struct {
	basePath  string
	placement config.IndexPlacement
	matcher   *Matcher
	logger    *slog.Logger
	recorder  metrics.Recorder
	newID     func() string
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) BuilderOption {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// NewBuilder validates the exclusion rules of nav and returns a Builder.
func NewBuilder(nav config.NavigationConfig, basePath string, opts ...BuilderOption) (*Builder, error) {
	matcher, err := NewMatcher(basePath, nav.Exclude)
	if err != nil {
		return nil, err
	}
	placement := nav.IndexPlacement
	if placement == "" {
		placement = config.IndexAsChild
	}
	b := &Builder{
		basePath:  basePath,
		placement: placement,
		matcher:   matcher,
		logger:    slog.Default(),
		recorder:  metrics.NoopRecorder{},
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build constructs the aggregate tree for pages, marking current as active.
// current may be nil. On error no tree is returned.
func (b *Builder) Build(pages []Page, current *Page) (*Tree, *BuildReport, error) {
	start := time.Now()
	report := &BuildReport{BuildID: b.newID()}
	log := b.logger.With(logfields.BuildID(report.BuildID))

	tree, err := b.build(pages, current, report, log)
	report.Duration = time.Since(start)
	b.recorder.ObserveBuildDuration(report.Duration)
	if err != nil {
		b.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		log.Error("Navigation build failed", logfields.Error(err))
		return nil, report, err
	}

	b.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	b.recorder.SetPageCounts(len(report.Included), len(report.Excluded))
	log.Debug("Navigation built",
		logfields.Included(len(report.Included)),
		logfields.Excluded(len(report.Excluded)),
		logfields.Duration(report.Duration))
	return tree, report, nil
}

func (b *Builder) build(pages []Page, current *Page, report *BuildReport, log *slog.Logger) (*Tree, error) {
	root := newNode()
	for i, p := range pages {
		if strings.TrimSpace(p.URL) == "" {
			return nil, ferrors.ValidationError("page has no url").
				WithContext("index", i).
				WithContext("source", p.Source).
				WithContext("title", p.Title).
				Build()
		}

		if rule, entry, excluded := b.matcher.Match(p); excluded {
			log.Debug("Page excluded from navigation",
				logfields.PageURL(p.URL), logfields.Rule(string(rule)), logfields.Entry(entry))
			report.Excluded = append(report.Excluded, Exclusion{URL: p.URL, Rule: rule, Entry: entry})
			continue
		}

		fragment := BuildFragment(Segments(p, b.basePath), p, current, b.placement)
		if err := Merge(root, fragment); err != nil {
			builder := ferrors.WrapError(err, ferrors.CategoryValidation, "duplicate navigation entry").
				UserAction().
				WithContext("page", p.URL).
				WithContext("source", p.Source)
			var collision *CollisionError
			if errors.As(err, &collision) {
				builder = builder.
					WithContext("path", collision.PathString()).
					WithContext("existing", collision.Existing)
			}
			return nil, builder.Build()
		}
		report.Included = append(report.Included, p.URL)
	}
	return &Tree{root: root, pages: len(report.Included)}, nil
}
