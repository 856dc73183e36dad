package gradient

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/iancoleman/strcase"
)

// ErrUnknownEffect is matched by errors returned from Lookup for names that
// are not registered.
var ErrUnknownEffect = errors.New("unknown gradient effect")

// UnknownEffectError reports a name that does not resolve to an effect.
type UnknownEffectError struct {
	Name string
}

func (e *UnknownEffectError) Error() string {
	return fmt.Sprintf("unknown gradient effect %q", e.Name)
}

func (e *UnknownEffectError) Is(target error) bool {
	return target == ErrUnknownEffect
}

// Code returns a stable identifier for scripts that match on failures.
func (e *UnknownEffectError) Code() string {
	return "UNKNOWN_GRADIENT"
}

type registration struct {
	title string
	build func(Options) Effect
}

// registry is keyed by the normalized name. Titles come from the snake_case
// spelling so that multi-word effects get proper labels.
var registry = map[string]registration{}

func register(snake string, build func(Options) Effect) {
	registry[normalize(snake)] = registration{
		title: strcase.ToCamel(snake),
		build: build,
	}
}

func init() {
	register("rainbow", func(o Options) Effect { return NewRainbow(o.Direction) })
	register("dark_rainbow", func(o Options) Effect { return NewDarkRainbow(o.Direction) })
	register("sunset", func(o Options) Effect { return Sunset{Direction: o.Direction} })
	register("loading", func(o Options) Effect { return Loading{Direction: o.Direction} })
	register("glitch", func(o Options) Effect { return Glitch{Seed: o.Seed} })
}

// normalize folds the accepted spellings of a name (DarkRainbow,
// dark-rainbow, dark_rainbow, darkrainbow) into one key.
func normalize(name string) string {
	return strings.ReplaceAll(strcase.ToSnake(name), "_", "")
}

// Names returns the registered effect names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup builds the effect registered under name.
func Lookup(name string, opts Options) (Effect, error) {
	reg, ok := registry[normalize(name)]
	if !ok {
		return nil, &UnknownEffectError{Name: name}
	}
	return reg.build(opts), nil
}

// Canonical returns the registered spelling of name.
func Canonical(name string) (string, error) {
	key := normalize(name)
	if _, ok := registry[key]; !ok {
		return "", &UnknownEffectError{Name: name}
	}
	return key, nil
}

// Title returns the display label for an effect, e.g. "DarkRainbow". Unknown
// names are returned unchanged.
func Title(name string) string {
	if reg, ok := registry[normalize(name)]; ok {
		return reg.title
	}
	return name
}
