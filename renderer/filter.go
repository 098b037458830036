package renderer

import (
	"fmt"
	"strings"

	"stargate/core"
)

// Filter selects the post-process kernel applied to the picture-in-picture
// view. The values are the filterMode uniform.
type Filter int32

const (
	FilterNone Filter = iota
	FilterGrayscale
	FilterSharpen
	FilterBlur
	FilterEdge
)

var filterNames = [...]string{"none", "grayscale", "sharpen", "blur", "edge"}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("filter(%d)", int32(f))
	}
	return filterNames[f]
}

func ParseFilter(s string) (Filter, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FilterNone, nil
	}
	for i, n := range filterNames {
		if n == name {
			return Filter(i), nil
		}
	}
	return FilterNone, fmt.Errorf("%w: %q", core.ErrUnknownFilter, s)
}
