package cli

import (
	"io"
	"log"

	"github.com/mvp-joe/cartographer/internal/config"
	"github.com/mvp-joe/cartographer/internal/overlay"
	"github.com/mvp-joe/cartographer/internal/srg"
	"github.com/spf13/cobra"
)

// session carries what every command needs: configuration, a writer for
// results and a writer for load summaries and progress.
type session struct {
	cfg    *config.Config
	out    io.Writer
	status io.Writer
	logger *log.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:    cfg,
		out:    cmd.OutOrStdout(),
		status: cmd.ErrOrStderr(),
		logger: log.New(cmd.ErrOrStderr(), "", log.LstdFlags),
	}, nil
}

// database opens the serialized database, importing it first if needed.
func (s *session) database() (*srg.Database, error) {
	return openDatabase(s.cfg, s.status, s.logger, NewCLIProgressReporter(s.status, false))
}

func (s *session) overlay() (*overlay.Database, error) {
	return openOverlay(s.cfg, s.logger)
}
