package extractor

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chembl/sdf2index/loader"
	"github.com/chembl/sdf2index/ranges"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

//Init sets up the range table, the reader, the extractor and the loader and
//runs them over conf.SDFPath
func Init(l *zap.SugaredLogger, conf *Configuration) error {
	ti := time.Now()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := loadRanges(ctx, l, conf)
	if err != nil {
		l.Error("Error loading ranges ", err)
		return err
	}

	ex := &Extractor{
		Path:     conf.SDFPath,
		Logger:   l,
		Progress: conf.Progress,
		Reader: &Reader{
			Logger:        l,
			Properties:    conf.Properties,
			ParseStereo:   conf.ParseStereo,
			SkipMalformed: conf.SkipMalformed,
			Workers:       conf.Workers,
		},
	}
	if rt != nil {
		ex.Reader.Ranges = rt
	}

	var consumers sync.WaitGroup
	var indexed, failed atomic.Int64
	if len(conf.ElasticHost) > 0 {
		em, err := getElasticManager(ctx, l, conf)
		if err != nil {
			return err
		}
		ex.ElasticManager = em
		consumers.Add(2)
		go consumeResponses(l, em, &consumers, &indexed, &failed)
		go func() {
			defer consumers.Done()
			for e := range em.Errchan {
				l.Errorf("Got error from bulk %s", e)
				cancel()
			}
		}()
	} else {
		l.Warn("No ElasticSearch host, molecules will only be parsed")
	}

	waitForSignal(l, ti, cancel, ex)

	err = ex.Start(ctx)
	if ex.ElasticManager != nil {
		s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
		s.Suffix = " waiting for bulk workers"
		s.Start()
		err = multierr.Append(err, ex.ElasticManager.Close())
		s.Stop()
		consumers.Wait()
		l.Infow(
			"Loader finished",
			"bulk requests",
			ex.ElasticManager.SentJobs(),
			"indexed",
			indexed.Load(),
			"failed",
			failed.Load(),
		)
	}
	if skipped := ex.Reader.Skipped(); skipped != nil {
		l.Warnf("%d malformed records skipped", ex.Reader.SkippedCount())
	}
	elapsedTime(l, ti)
	return err
}

func loadRanges(ctx context.Context, l *zap.SugaredLogger, conf *Configuration) (*ranges.Table, error) {
	switch {
	case len(conf.RangesOracleConn) > 0:
		return ranges.LoadOracle(ctx, l, conf.RangesOracleConn, conf.RangesQuery)
	case len(conf.SetupPath) > 0:
		l.Infof("Reading ranges from %s", conf.SetupPath)
		return ranges.LoadSetup(conf.SetupPath)
	}
	return nil, nil
}

func consumeResponses(l *zap.SugaredLogger, em *loader.ElasticManager, wg *sync.WaitGroup, indexed, failed *atomic.Int64) {
	defer wg.Done()
	for r := range em.Respchan {
		indexed.Add(int64(r.Indexed))
		failed.Add(int64(r.Failed))
		if r.BulkResponse.Errors {
			l.Error("Bulk response reported errors")
		}
		l.Infow(
			"WORKER_RESPONSE",
			"succeeded",
			r.Succedded,
			"indexed",
			r.Indexed,
			"failed",
			r.Failed,
			"Took",
			r.BulkResponse.Took,
		)
		if r.Failed > 0 {
			titles := ""
			reasons := ""
			for _, it := range r.BulkResponse.Failed() {
				titles = titles + "," + it.Id
				if it.Error != nil {
					reasons = reasons + " " + it.Error.Reason
				}
			}
			l.Error("Titles with error ", titles)
			l.Debug("Reasons: ", reasons)
		}
	}
}

func getElasticManager(ctx context.Context, l *zap.SugaredLogger, cn *Configuration) (*loader.ElasticManager, error) {
	em := loader.ElasticManager{
		IndexName:    cn.Index,
		TypeName:     cn.Type,
		Bulklimit:    cn.BulkLimit,
		MaxBulkCalls: cn.MaxBulkCalls,
	}

	auth := loader.Auth{Username: cn.ElasticAuth.Username, Password: cn.ElasticAuth.Password}
	err := em.Init(ctx, cn.ElasticHost, auth, l)
	if err != nil {
		l.Error("Error init ElasticManager ", err)
		return nil, err
	}

	return &em, nil
}

func waitForSignal(l *zap.SugaredLogger, t time.Time, cancel context.CancelFunc, ex *Extractor) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		l.Warn("Received Interrupt Signal")
		l.Warnf("Parsed %d molecules, last one %q", ex.Parsed.Load(), ex.LastTitle.Load())
		elapsedTime(l, t)
		cancel()
	}()
}

func elapsedTime(l *zap.SugaredLogger, t time.Time) {
	logger := l
	e := time.Since(t)
	logger.Infof("Elapsed %s", e)
}
