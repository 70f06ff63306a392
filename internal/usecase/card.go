// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/profile-stats/internal/domain"
	"github.com/naka-gawa/profile-stats/internal/gateway"
	"github.com/naka-gawa/profile-stats/internal/rank"
	"github.com/naka-gawa/profile-stats/internal/render"
)

// CardOptions controls a single card generation.
type CardOptions struct {
	// HideRank leaves the rank ring off the card.
	HideRank bool
	// ShowQuota also fetches the remaining API quota.
	ShowQuota bool
	// SkipRender computes stats and rank only.
	SkipRender bool
}

// CardResult is the output of CardGenerator.Generate.
type CardResult struct {
	Card  domain.Card
	Rank  domain.RankResult
	Quota *domain.Quota
}

// CardGenerator is the use case for building the stats card.
// It orchestrates fetching, ranking and rendering.
type CardGenerator struct {
	fetcher gateway.Fetcher
	logger  *zap.Logger
}

// NewCardGenerator creates a new CardGenerator instance.
func NewCardGenerator(fetcher gateway.Fetcher, logger *zap.Logger) *CardGenerator {
	return &CardGenerator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Generate fetches the stats of login, ranks them and renders the card.
// The quota fetch, when requested, runs alongside the profile fetch and never fails the run.
func (g *CardGenerator) Generate(ctx context.Context, login string, opts CardOptions) (*CardResult, error) {
	g.logger.Debug("usecase: starting card generation", zap.String("login", login))

	var stats *domain.RawStats
	var quota *domain.Quota

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		stats, err = g.fetcher.FetchProfile(egCtx, login)
		return err
	})

	if opts.ShowQuota {
		eg.Go(func() error {
			q, err := g.fetcher.FetchQuota(egCtx)
			if err != nil {
				g.logger.Warn("could not fetch API quota", zap.Error(err))
				return nil
			}
			quota = q
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := rank.Calculate(*stats)
	g.logger.Debug("usecase: ranked profile",
		zap.String("label", result.Label),
		zap.Float64("score", result.Score))

	card := domain.Card{Stats: *stats}
	if !opts.HideRank {
		card.Rank = &result
	}

	if !opts.SkipRender {
		svg, err := render.Render(card.Stats, card.Rank)
		if err != nil {
			return nil, err
		}
		card.SVG = svg
	}

	g.logger.Debug("usecase: card generation complete")
	return &CardResult{Card: card, Rank: result, Quota: quota}, nil
}

// Publish generates the card of login and writes it to path.
// Nothing is written when fetching or rendering fails.
func (g *CardGenerator) Publish(ctx context.Context, login string, fsys gateway.Filesystem, path string, opts CardOptions) (*CardResult, error) {
	opts.SkipRender = false
	res, err := g.Generate(ctx, login, opts)
	if err != nil {
		return nil, err
	}
	if err := WriteCard(fsys, path, res.Card); err != nil {
		return nil, fmt.Errorf("failed to write stats card: %w", err)
	}
	g.logger.Debug("usecase: card written", zap.String("path", path))
	return res, nil
}

// WriteCard stores the rendered card at path.
func WriteCard(fsys gateway.Filesystem, path string, card domain.Card) error {
	if card.SVG == "" {
		return fmt.Errorf("card for %q has not been rendered", card.Stats.Name)
	}
	return fsys.WriteFile(path, []byte(card.SVG))
}
