package checkout

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	codeSpace = 1000
	maxDraws  = 16
)

// CodeChecker reports whether an invoice code is already used.
type CodeChecker interface {
	CodeTaken(ctx context.Context, code string) (bool, error)
}

// CodeGenerator issues invoice codes of the form TRX/<year>/<MM>/<NNN>.
// A code is not handed out again while it is reserved by an open cart or
// known to the checker. Reservations only cover the current month.
type CodeGenerator struct {
	mu      sync.Mutex
	checker CodeChecker
	now     func() time.Time
	intN    func(n int) int
	prefix  string
	issued  map[string]struct{}
}

func NewCodeGenerator(checker CodeChecker) *CodeGenerator {
	return &CodeGenerator{
		checker: checker,
		now:     time.Now,
		intN:    rand.IntN,
		issued:  make(map[string]struct{}),
	}
}

// Next draws random numbers first and falls back to scanning the month's
// whole space, so it only fails once all 1000 codes are used.
func (g *CodeGenerator) Next(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	prefix := fmt.Sprintf("TRX/%d/%02d/", now.Year(), int(now.Month()))

	if prefix != g.prefix {
		g.prefix = prefix
		clear(g.issued)
	}

	for range maxDraws {
		code, ok, err := g.try(ctx, prefix, g.intN(codeSpace))
		if err != nil || ok {
			return code, err
		}
	}

	start := g.intN(codeSpace)
	for i := range codeSpace {
		code, ok, err := g.try(ctx, prefix, (start+i)%codeSpace)
		if err != nil || ok {
			return code, err
		}
	}

	return "", fmt.Errorf("%w: %s", ErrCodeSpaceExhausted, prefix)
}

func (g *CodeGenerator) try(ctx context.Context, prefix string, n int) (string, bool, error) {
	code := fmt.Sprintf("%s%03d", prefix, n)
	if _, ok := g.issued[code]; ok {
		return "", false, nil
	}

	taken, err := g.checker.CodeTaken(ctx, code)
	if err != nil {
		return "", false, fmt.Errorf("checking invoice code %s: %w", code, err)
	}

	if taken {
		return "", false, nil
	}

	g.issued[code] = struct{}{}

	return code, true, nil
}

// Release returns a reserved code that will never reach the ledger, such as
// the code of a discarded cart. Releasing a recorded code is harmless since
// the checker still reports it as taken.
func (g *CodeGenerator) Release(code string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.issued, code)
}
