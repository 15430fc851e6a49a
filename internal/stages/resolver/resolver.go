package resolver

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/internal/render"
	"github.com/cp-helper/judge/pkg/errors"
	"go.uber.org/zap"
)

// LibraryFile is one candidate library, already extracted to plain source.
type LibraryFile struct {
	Name string
	Body string
}

// ReferenceDetector decides whether candidateText uses the library called
// libraryName. The graph algorithm only depends on this predicate, so a
// syntax-aware detector can replace the regex one.
type ReferenceDetector interface {
	References(candidateText, libraryName string) (bool, error)
}

// RegexDetector renders a handlebars pattern with {{name}} bound to the
// library name and matches the resulting regular expression.
type RegexDetector struct {
	pattern  string
	renderer render.Renderer

	mu       sync.Mutex
	compiled map[string]*regexp.Regexp
}

func NewRegexDetector(pattern string, renderer render.Renderer) *RegexDetector {
	return &RegexDetector{
		pattern:  pattern,
		renderer: renderer,
		compiled: make(map[string]*regexp.Regexp),
	}
}

func (d *RegexDetector) References(candidateText, libraryName string) (bool, error) {
	re, err := d.regexFor(libraryName)
	if err != nil {
		return false, err
	}
	return re.MatchString(candidateText), nil
}

func (d *RegexDetector) regexFor(name string) (*regexp.Regexp, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if re, ok := d.compiled[name]; ok {
		return re, nil
	}
	expr, err := d.renderer.Render(d.pattern, map[string]interface{}{"name": name})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrInvalidReferencePattern, err)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q for library %q: %s", errors.ErrInvalidReferencePattern, expr, name, err)
	}
	d.compiled[name] = re
	return re, nil
}

// Resolution is the outcome of one resolution pass.
type Resolution struct {
	// Graph maps every required library to the sorted names it references.
	Graph map[string][]string
	// Sorted is Kahn's order: dependents before their dependencies.
	Sorted []string
}

// BundleOrder returns Sorted reversed, so every library precedes the
// libraries that depend on it.
func (r Resolution) BundleOrder() []string {
	out := make([]string, len(r.Sorted))
	for i, name := range r.Sorted {
		out[len(r.Sorted)-1-i] = name
	}
	return out
}

type Resolver interface {
	Resolve(rootSource string, libraries []LibraryFile) (Resolution, error)
}

type resolver struct {
	detector ReferenceDetector
	logger   *zap.SugaredLogger
}

func NewResolver(detector ReferenceDetector) Resolver {
	return &resolver{
		detector: detector,
		logger:   logger.NewNamedLogger("resolver"),
	}
}

// Resolve finds the libraries rootSource needs, directly or transitively, and
// orders them. Names are always visited in sorted order so identical inputs
// give identical output. A referenced name missing from libraries is skipped.
func (r *resolver) Resolve(rootSource string, libraries []LibraryFile) (Resolution, error) {
	bodies := make(map[string]string, len(libraries))
	for _, lib := range libraries {
		bodies[lib.Name] = lib.Body
	}
	names := make([]string, 0, len(bodies))
	for name := range bodies {
		names = append(names, name)
	}
	sort.Strings(names)

	var queue []string
	queued := make(map[string]bool)
	for _, name := range names {
		ok, err := r.detector.References(rootSource, name)
		if err != nil {
			return Resolution{}, err
		}
		if ok {
			queue = append(queue, name)
			queued[name] = true
		}
	}
	r.logger.Debugf("Initial libraries: %v", queue)

	graph := make(map[string][]string)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if _, done := graph[current]; done {
			continue
		}

		body, ok := bodies[current]
		if !ok {
			continue
		}

		deps := []string{}
		for _, candidate := range names {
			if candidate == current {
				continue
			}
			ok, err := r.detector.References(body, candidate)
			if err != nil {
				return Resolution{}, err
			}
			if !ok {
				continue
			}
			deps = append(deps, candidate)
			if !queued[candidate] {
				queued[candidate] = true
				queue = append(queue, candidate)
			}
		}
		graph[current] = deps
	}
	r.logger.Debugf("Dependency graph: %v", graph)

	sorted, err := TopoSort(graph)
	if err != nil {
		r.logger.Errorf("Failed to order libraries: %s", err)
		return Resolution{}, err
	}

	return Resolution{Graph: graph, Sorted: sorted}, nil
}

// TopoSort orders graph with Kahn's algorithm, where the in-degree of a node
// is the number of nodes listing it as a dependency. Nodes are emitted
// before their dependencies. Ties are broken by name.
func TopoSort(graph map[string][]string) ([]string, error) {
	inDegree := make(map[string]int, len(graph))
	for node, deps := range graph {
		if _, ok := inDegree[node]; !ok {
			inDegree[node] = 0
		}
		for _, dep := range deps {
			inDegree[dep]++
		}
	}

	nodes := make([]string, 0, len(inDegree))
	for node := range inDegree {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	var queue []string
	for _, node := range nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		deps := append([]string(nil), graph[node]...)
		sort.Strings(deps)
		for _, dep := range deps {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, errors.ErrCycleDetected
	}
	return order, nil
}
