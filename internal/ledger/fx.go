package ledger

import (
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger",
	fx.Provide(
		func(cfg *config.Config, log logger.Logger) (*Ledger, error) {
			l, err := Open(cfg.Mirror.LedgerPath, cfg.Mirror.LedgerMax)
			if err != nil {
				return nil, err
			}
			log.Info("Loaded ledger", "path", cfg.Mirror.LedgerPath, "entries", l.Len(), "max", cfg.Mirror.LedgerMax)
			return l, nil
		},
	),
)
