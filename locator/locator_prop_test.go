package locator

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/twitter/icewire/common/stats"
)

// An op acquires a key when acquire is set, otherwise releases the oldest outstanding
// reference to that key (if any).
type op struct {
	key     string
	acquire bool
}

func genOp() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("parent", "child", "plain"),
		gen.Bool(),
	).Map(func(vals []interface{}) op {
		return op{key: vals[0].(string), acquire: vals[1].(bool)}
	})
}

func Test_ReferenceCountsBalance(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("counts match outstanding references and drain to zero", prop.ForAll(
		func(ops []op) bool {
			stat := stats.DefaultStatsReceiver()
			l, err := newTestRegistry(stat).GetInstance("")
			if err != nil {
				return false
			}
			held := map[string][]*Reference{}
			for _, o := range ops {
				if o.acquire {
					ref, err := l.UseContext(o.key)
					if err != nil {
						return false
					}
					held[o.key] = append(held[o.key], ref)
				} else if refs := held[o.key]; len(refs) > 0 {
					if err := refs[0].Release(); err != nil {
						return false
					}
					held[o.key] = refs[1:]
				}
				// child holds one reference to parent while it is live.
				wantParent := len(held["parent"])
				if len(held["child"]) > 0 {
					wantParent++
				}
				if l.RefCount("child") != len(held["child"]) ||
					l.RefCount("plain") != len(held["plain"]) ||
					l.RefCount("parent") != wantParent {
					return false
				}
			}
			for _, refs := range held {
				for _, ref := range refs {
					if err := ref.Release(); err != nil {
						return false
					}
				}
			}
			scoped := stat.Scope("locator")
			return l.RefCount("parent") == 0 && l.RefCount("child") == 0 && l.RefCount("plain") == 0 &&
				scoped.Counter(stats.LocatorAcquireCounter).Count() == scoped.Counter(stats.LocatorReleaseCounter).Count()
		},
		gen.SliceOf(genOp()),
	))

	properties.TestingRun(t)
}
