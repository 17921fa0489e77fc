package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"aptamer_api/internal/aptamer/candidate"
	"aptamer_api/internal/aptamer/metrics"

	"github.com/sirupsen/logrus"
)

// step thực hiện một lần thử: trả về ứng viên, cờ chấp nhận, hoặc lỗi oracle (dừng vòng lặp)
type step func(rng *rand.Rand) (candidate.Candidate, bool, error)

// search chạy vòng lặp cho đến khi đủ target hoặc hết budget.
// Mỗi lần gọi step tính là một lần thử, bất kể bị loại ở bước nào.
// Context được kiểm tra giữa các lần thử.
func (e *Engine) search(ctx context.Context, mode Mode, target, budget int, next step) (Result, error) {
	res := Result{Mode: mode, Target: target, Budget: budget}
	if target <= 0 {
		return res, nil
	}

	rng := e.source()
	res.Candidates = make([]candidate.Candidate, 0, target)
	for len(res.Candidates) < target && res.Attempts < budget {
		if err := ctx.Err(); err != nil {
			e.logRun(res).WithError(err).Warn("Search interrupted")
			return res, fmt.Errorf("%s search interrupted after %d attempts: %w", mode, res.Attempts, err)
		}

		res.Attempts++
		c, accepted, err := next(rng)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				e.logRun(res).WithError(err).Warn("Search interrupted")
				return res, fmt.Errorf("%s search interrupted after %d attempts: %w", mode, res.Attempts, err)
			}
			e.logRun(res).WithError(err).Error("Oracle failure during search")
			return res, err
		}
		if !accepted {
			continue
		}
		c.Kd = metrics.DissociationConstant(c.MFE)
		res.Candidates = append(res.Candidates, c)
	}

	entry := e.logRun(res)
	if res.Exhausted() {
		entry.Info("Search budget exhausted before reaching target")
	} else {
		entry.Debug("Search completed")
	}
	return res, nil
}

func (e *Engine) logRun(res Result) *logrus.Entry {
	return e.log.WithFields(logrus.Fields{
		"mode":     res.Mode,
		"target":   res.Target,
		"accepted": len(res.Candidates),
		"attempts": res.Attempts,
		"budget":   res.Budget,
	})
}
