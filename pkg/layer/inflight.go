package layer

import (
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/layerproc/layerproc/internal/vec2"
)

// parallelGroup de-duplicates concurrent Compute calls for the same chunk
// index, giving the single-producer-per-index guarantee spec §5 requires
// of any implementation that parallelizes chunk computation. It mirrors
// the teacher's loaderGroup (pkg/loader.go), which de-duplicates
// concurrent cache loads the same way via x/sync/singleflight.
//
// The canonical layerproc driver is sequential and never constructs one of
// these; WithParallelCompute opts a Layer into it.
type parallelGroup struct {
	g singleflight.Group
}

func newParallelGroup() *parallelGroup { return &parallelGroup{} }

func indexKey(i vec2.Point) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(i.X, 10))
	b.WriteByte(',')
	b.WriteString(strconv.FormatInt(i.Y, 10))
	return b.String()
}

// computeOnce runs fn exactly once for index i across concurrent callers,
// returning the same result to every waiter.
func (g *parallelGroup) computeOnce(i vec2.Point, fn func() any) any {
	v, _, _ := g.g.Do(indexKey(i), func() (any, error) {
		return fn(), nil
	})
	return v
}

// WithParallelCompute opts a Layer into the singleflight-backed
// single-producer-per-index mode described in spec §5. Without this
// option, Layer assumes the canonical single-threaded cooperative driver
// and performs no de-duplication (none is needed).
func WithParallelCompute[C any]() Option[C] {
	return func(o *layerOpts) { o.parallel = true }
}
