package main

import (
	"github.com/dustin/go-humanize"
	"github.com/icinga/icinga-filter/internal"
	"github.com/icinga/icinga-filter/internal/daemon"
	"github.com/icinga/icinga-filter/internal/query"
	"github.com/icinga/icinga-filter/internal/records"
	"github.com/icinga/icinga-filter/pkg/filter"
	"github.com/icinga/icinga-go-library/logging"
	"github.com/icinga/icinga-go-library/utils"
	"go.uber.org/zap"
	"os"
)

func main() {
	conf := daemon.ParseFlagsAndConfig()

	logs, err := logging.NewLoggingFromConfig("icinga-filter", conf.Logging)
	if err != nil {
		utils.PrintErrorThenExit(err, daemon.ExitFailure)
	}

	logger := logs.GetLogger()
	defer func() { _ = logger.Sync() }()

	logger.Debugf("Starting Icinga Filter (%s)", internal.Version.Version)

	rs, err := records.Load(conf.Records, logs.GetChildLogger("records"))
	if err != nil {
		logger.Fatalf("Cannot load records: %+v", err)
	}

	b := filter.New(rs, filter.WithLogger(logs.GetChildLogger("filter").SugaredLogger))
	if err := query.Apply(b, conf.Query); err != nil {
		logger.Fatalf("Invalid query: %+v", err)
	}

	matches, err := b.Get()
	if err != nil {
		logger.Fatalf("Cannot filter records: %+v", err)
	}

	logger.Infow("Filtered records",
		zap.String("filter", b.String()),
		zap.String("records", humanize.Comma(int64(len(rs)))),
		zap.String("matches", humanize.Comma(int64(len(matches)))))

	if err := records.Render(os.Stdout, conf.Output, matches); err != nil {
		logger.Fatalf("Cannot write matches: %+v", err)
	}
}
