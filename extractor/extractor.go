package extractor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chembl/sdf2index/loader"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

//Extractor reads the SD file at Path and adds every molecule into the index
//using the ElasticManager provided. Without an ElasticManager molecules are
//only parsed and counted.
type Extractor struct {
	ElasticManager *loader.ElasticManager
	Reader         *Reader
	Path           string
	Logger         *zap.SugaredLogger
	Progress       bool
	Parsed         atomic.Int64
	LastTitle      atomic.String
}

// Start parsing the SD file
func (ex *Extractor) Start(ctx context.Context) error {
	logger := ex.Logger

	logger.Infof("Reading %s", ex.Path)
	f, err := os.Open(ex.Path)
	if err != nil {
		logger.Error("Error opening SD file ", err)
		return err
	}
	defer f.Close()

	var src io.Reader = f
	if ex.Progress {
		p, bar, err := ex.progressBar(f)
		if err != nil {
			return err
		}
		pr := bar.ProxyReader(f)
		defer func() {
			pr.Close()
			// complete the bar even when reading stopped early
			bar.SetTotal(bar.Current(), true)
			p.Wait()
		}()
		src = pr
	}

	err = ex.Reader.Each(ctx, src, ex.add)
	if err != nil {
		logger.Errorf("Stopped after %d molecules, last one %q", ex.Parsed.Load(), ex.LastTitle.Load())
		return err
	}

	if ex.ElasticManager != nil {
		logger.Info("Sending last bulk")
		ex.ElasticManager.SendCurrentBulk()
	}
	logger.Infof("Parsed %d molecules, skipped %d", ex.Parsed.Load(), ex.Reader.SkippedCount())
	return nil
}

func (ex *Extractor) add(b Block, mol Molecule) error {
	ex.Parsed.Inc()
	ex.LastTitle.Store(mol.Title())
	if ex.ElasticManager == nil {
		return nil
	}
	src, ok := mol.(loader.Source)
	if !ok {
		return fmt.Errorf("record %d: %T cannot be indexed", b.Seq, mol)
	}
	ex.ElasticManager.AddToBulk(loader.NewDocument(src))
	return nil
}

func (ex *Extractor) progressBar(f *os.File) (*mpb.Progress, *mpb.Bar, error) {
	st, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(st.Size(),
		mpb.PrependDecorators(
			decor.Name(st.Name(), decor.WC{W: len(st.Name()) + 1, C: decor.DidentRight}),
			decor.CountersKibiByte("% .2f / % .2f"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)
	return p, bar, nil
}
