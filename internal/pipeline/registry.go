package pipeline

import (
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
	"git.home.luguber.info/inful/sitebuilder/internal/source"
)

// Parser turns a source file into a content item.
type Parser interface {
	Name() string
	// Supports reports whether this parser claims the file. It must not fail.
	Supports(f source.File) bool
	Parse(f source.File) (content.Item, error)
}

// Generator renders a content item into one or more pages.
type Generator interface {
	Name() string
	Supports(item content.Item) bool
	// Generate may consult the pages produced so far but cannot modify them.
	Generate(item content.Item, produced page.View) ([]page.Page, error)
}

// OneTimeGenerator runs once after every content item has been generated
// and sees the complete first-phase page set.
type OneTimeGenerator interface {
	Name() string
	Generate(site *page.Site) ([]page.Page, error)
}

// ParserRegistry dispatches files to the first parser that supports them.
type ParserRegistry struct {
	parsers []Parser
}

// Register appends p. Registration order is dispatch priority.
func (r *ParserRegistry) Register(p Parser) {
	r.parsers = append(r.parsers, p)
}

// Len returns the number of registered parsers.
func (r *ParserRegistry) Len() int { return len(r.parsers) }

// Find returns the first parser supporting f.
func (r *ParserRegistry) Find(f source.File) (Parser, bool) {
	for _, p := range r.parsers {
		if p.Supports(f) {
			return p, true
		}
	}
	return nil, false
}

// Parse runs the first supporting parser on f. ok is false when no parser
// claims the file, which is not an error.
func (r *ParserRegistry) Parse(f source.File) (item content.Item, ok bool, err error) {
	p, found := r.Find(f)
	if !found {
		return nil, false, nil
	}

	item, err = p.Parse(f)
	if err != nil {
		return nil, true, annotate(err, errors.ParseError("parser failed"), errors.ErrorContext{
			errors.ContextFile:   f.Path,
			errors.ContextParser: p.Name(),
		})
	}
	if item == nil {
		return nil, true, errors.InternalError("parser returned no content item").
			WithFile(f.Path).
			WithContext(errors.ContextParser, p.Name()).
			Build()
	}
	return item, true, nil
}

// GeneratorRegistry dispatches content items to the first generator that
// supports them.
type GeneratorRegistry struct {
	generators []Generator
}

// Register appends g. Registration order is dispatch priority.
func (r *GeneratorRegistry) Register(g Generator) {
	r.generators = append(r.generators, g)
}

// Len returns the number of registered generators.
func (r *GeneratorRegistry) Len() int { return len(r.generators) }

// Find returns the first generator supporting item.
func (r *GeneratorRegistry) Find(item content.Item) (Generator, bool) {
	for _, g := range r.generators {
		if g.Supports(item) {
			return g, true
		}
	}
	return nil, false
}

// Generate runs the first supporting generator. An item no generator
// supports is an UnmatchedContentError.
func (r *GeneratorRegistry) Generate(item content.Item, produced page.View) (Generator, []page.Page, error) {
	g, found := r.Find(item)
	if !found {
		return nil, nil, errors.UnmatchedContentError("no generator supports content item").
			WithFile(item.SourcePath()).
			WithContext("item_kind", string(item.Kind())).
			Build()
	}

	pages, err := g.Generate(item, produced)
	if err != nil {
		return g, nil, annotate(err, errors.RenderError("generator failed"), errors.ErrorContext{
			errors.ContextFile: item.SourcePath(),
			contextGenerator:   g.Name(),
		})
	}
	return g, pages, nil
}

const contextGenerator = "generator"

// Handler binds a parser to the generator that renders what it produces.
type Handler struct {
	Parser    Parser
	Generator Generator
}

// Registry holds every handler of a build.
type Registry struct {
	Parsers    ParserRegistry
	Generators GeneratorRegistry
	OneTime    []OneTimeGenerator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds the parser and generator of h at the same priority.
func (r *Registry) Register(h Handler) {
	if h.Parser != nil {
		r.Parsers.Register(h.Parser)
	}
	if h.Generator != nil {
		r.Generators.Register(h.Generator)
	}
}

// RegisterOneTime appends a one-time generator. They run in registration order.
func (r *Registry) RegisterOneTime(g OneTimeGenerator) {
	r.OneTime = append(r.OneTime, g)
}

// annotate attaches context to a classified error, or wraps a plain error
// in fallback.
func annotate(err error, fallback *errors.ErrorBuilder, ctx errors.ErrorContext) error {
	if ce, ok := errors.AsClassified(err); ok {
		for k, v := range ctx {
			if _, exists := ce.Context().Get(k); !exists {
				ce = ce.WithContext(k, v)
			}
		}
		return ce
	}
	return fallback.WithContextMap(ctx).WithCause(err).Build()
}
