package extractor

import (
	"context"
	"io"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
)

// EmitFunc receives every parsed molecule in file order
type EmitFunc func(b Block, mol Molecule) error

type parsed struct {
	block Block
	mol   Molecule
	err   error
}

// Each parses every terminated record of src and hands the molecules to fn
// in file order. It stops at the first error returned by fn or, unless
// SkipMalformed is set, at the first malformed record.
func (r *Reader) Each(ctx context.Context, src io.Reader, fn EmitFunc) error {
	if r.Workers > 1 {
		return r.eachConcurrent(ctx, src, fn)
	}
	br := NewBlockReader(src)
	br.Logger = r.logger()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		b, err := br.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		mol, err := r.ParseBlock(b)
		if err := r.emit(parsed{b, mol, err}, fn); err != nil {
			return err
		}
	}
}

func (r *Reader) emit(p parsed, fn EmitFunc) error {
	if p.err != nil {
		if !r.skippable(p.err) {
			return p.err
		}
		r.skip(p.err)
		return nil
	}
	return fn(p.block, p.mol)
}

func (r *Reader) eachConcurrent(ctx context.Context, src io.Reader, fn EmitFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	blocks := make(chan Block, r.Workers)
	results := make(chan parsed, r.Workers)

	g.Go(func() error {
		defer close(blocks)
		br := NewBlockReader(src)
		br.Logger = r.logger()
		for {
			b, err := br.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			select {
			case blocks <- b:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	var wg sync.WaitGroup
	for i := 0; i < r.Workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for b := range blocks {
				mol, err := r.ParseBlock(b)
				if err != nil && !r.skippable(err) {
					return err
				}
				select {
				case results <- parsed{b, mol, err}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// results arrive out of order, hold them until their turn
	var emitErr error
	pending := make(map[int]parsed)
	next := 0
	for p := range results {
		if emitErr != nil {
			continue
		}
		pending[p.block.Seq] = p
		for {
			q, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if err := r.emit(q, fn); err != nil {
				emitErr = err
				cancel()
				break
			}
		}
	}

	err := g.Wait()
	if emitErr != nil {
		return emitErr
	}
	return err
}

// ReadAll parses src into molecules keyed by title. A later record with the
// same title replaces the earlier one.
func (r *Reader) ReadAll(ctx context.Context, src io.Reader) (map[string]Molecule, error) {
	logger := r.logger()
	mols := make(map[string]Molecule)
	err := r.Each(ctx, src, func(b Block, mol Molecule) error {
		if _, ok := mols[mol.Title()]; ok {
			logger.Debugf("Record %d replaces an earlier molecule titled %q", b.Seq, mol.Title())
		}
		mols[mol.Title()] = mol
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mols, nil
}

// ReadFile parses the SD file at fname, see ReadAll
func (r *Reader) ReadFile(ctx context.Context, fname string) (map[string]Molecule, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return r.ReadAll(ctx, f)
}
