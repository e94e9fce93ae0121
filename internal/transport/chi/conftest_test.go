package chi

import (
	"context"

	"go.uber.org/zap"

	"github.com/mahendramedapati27/unimatch/internal/domain"
	healthuc "github.com/mahendramedapati27/unimatch/internal/usecase/health"
	"github.com/mahendramedapati27/unimatch/internal/usecase/pipeline"
	"github.com/mahendramedapati27/unimatch/internal/usecase/search"
)

// --- Mocks ---

type mockRecommender struct {
	got   domain.ProfileInput
	runFn func(ctx context.Context, in domain.ProfileInput) pipeline.Output
}

func (m *mockRecommender) Run(ctx context.Context, in domain.ProfileInput) pipeline.Output {
	m.got = in
	if m.runFn != nil {
		return m.runFn(ctx, in)
	}
	return pipeline.Output{Profile: domain.NewProfile(in)}
}

type mockSearcher struct {
	got domain.Profile
	res search.Result
}

func (m *mockSearcher) Search(_ context.Context, p domain.Profile) search.Result {
	m.got = p
	return m.res
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

func zapNop() *zap.Logger { return zap.NewNop() }
