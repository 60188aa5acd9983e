package loader

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/olivere/elastic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const mapping = `{
	"settings": {
		"refresh_interval": -1,
		"number_of_replicas": 1,
		"number_of_shards": 5
	},
	"mappings": {
		"molecule": {
			"properties": {
				"title": {
					"type": "keyword"
				},
				"formula": {
					"type": "keyword"
				},
				"num_atoms": {
					"type": "integer"
				},
				"num_bonds": {
					"type": "integer"
				},
				"atoms": {
					"type": "nested",
					"properties": {
						"symbol": {
							"type": "keyword",
							"copy_to": "symbols"
						},
						"charge": {
							"type": "byte"
						}
					}
				},
				"bonds": {
					"type": "nested",
					"properties": {
						"stereo": {
							"type": "keyword"
						}
					}
				}
			}
		}
	}
}`

//Auth for ElasticSearch basic authentication
type Auth struct {
	Username, Password string
}

// WorkerResponse contains the result of the BulkRequest to the ElasticSearch index
type WorkerResponse struct {
	Succedded    int
	Indexed      int
	Created      int
	Updated      int
	Failed       int
	BulkResponse *elastic.BulkResponse
}

// ElasticManager used for connection and adding molecules to the
// elastic server
type ElasticManager struct {
	logger             *zap.SugaredLogger
	Context            context.Context
	Client             *elastic.Client
	IndexName          string
	TypeName           string
	Bulklimit          int
	countBulkRequest   int
	currentBulkService *elastic.BulkService
	Errchan            chan error
	Respchan           chan WorkerResponse
	WaitGroup          sync.WaitGroup
	currentBulkCalls   int
	MaxBulkCalls       int
	totalSentJobs      int
}

// Init function initializes an elastic client and pings it to check the provider server is up
func (em *ElasticManager) Init(ctx context.Context, host string, auth Auth, logger *zap.SugaredLogger) error {
	em.logger = logger
	em.Context = ctx

	if em.Bulklimit <= 0 {
		return errors.New("BulkLimit must be a number higher than 0")
	}
	if em.MaxBulkCalls <= 0 {
		return errors.New("MaxBulkCalls must be a number higher than 0")
	}

	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(host),
		elastic.SetSniff(false),
	}
	if len(auth.Username) > 0 {
		opts = append(opts, elastic.SetBasicAuth(auth.Username, auth.Password))
	}

	var err error
	em.Client, err = elastic.NewClient(opts...)
	if err != nil {
		em.logger.Error("Error connecting to ElasticSearch ", err)
		return err
	}

	inf, code, err := em.Client.Ping(host).Do(ctx)
	if err != nil {
		em.logger.Error("Error Pinging elastic client ", err)
		return err
	}
	em.logger.Infof("Succesfully pinged ElasticSearch server with code %d and version %s", code, inf.Version.Number)

	ex, err := em.Client.IndexExists(em.IndexName).Do(ctx)
	if err != nil {
		em.logger.Error("Error fetchin index existence ", err)
		return err
	}

	if !ex {
		em.logger.Infof("Creating index %s", em.IndexName)
		in, err := em.Client.CreateIndex(em.IndexName).BodyString(mapping).Do(ctx)
		if err != nil {
			em.logger.Error("Error creating index  ", err)
			return err
		}
		if !in.Acknowledged {
			return errors.New("index creation not acknowledged")
		}
		// Giving ES time to set up the Index
		time.Sleep(2 * time.Second)
	} else {
		em.logger.Infof("Index %s exist, skipping its creation", em.IndexName)
	}

	em.currentBulkService = em.Client.Bulk()
	em.currentBulkCalls = 0
	em.countBulkRequest = 0
	em.totalSentJobs = 0

	em.Errchan = make(chan error)
	em.Respchan = make(chan WorkerResponse)
	return nil
}

// AddToBulk fills a BulkRequest up to the limit set up on the em.Bulklimit
// property, full requests are sent by a worker
func (em *ElasticManager) AddToBulk(d Document) {
	ctx := em.Context

	em.logger.Debugw(
		"Adding to index: ",
		"title",
		d.Title,
		"atoms",
		d.NumAtoms)

	if em.countBulkRequest < em.Bulklimit {
		em.countBulkRequest++
	} else {
		em.logger.Debugf("Got %d sending BulkRequest. New Bulk starting from: %s", em.countBulkRequest, d.Title)
		if em.currentBulkCalls < em.MaxBulkCalls {
			em.currentBulkCalls++
		} else {
			// Wait for the MaxBulkCalls threads finish before continuing
			em.logger.Debugf("Hitting %d workers to send. Waiting for them to finish. Last title: %s", em.currentBulkCalls, d.Title)
			em.WaitGroup.Wait()
			em.currentBulkCalls = 0
		}

		em.totalSentJobs++
		em.WaitGroup.Add(1)
		go em.sendBulkRequest(ctx, em.currentBulkService)

		em.countBulkRequest = 1
		em.currentBulkService = em.Client.Bulk()
	}

	t := elastic.NewBulkIndexRequest().Index(em.IndexName).Type(em.TypeName).Id(d.Title).Doc(d)
	em.currentBulkService = em.currentBulkService.Add(t)
}

//SendCurrentBulk throught a worker, useful for cleaning the requests stored on the BulkService
//regardless the BulkLimit has been reached or not
func (em *ElasticManager) SendCurrentBulk() {
	if em.currentBulkService.NumberOfActions() > 0 {
		em.totalSentJobs++
		em.WaitGroup.Add(1)
		go em.sendBulkRequest(em.Context, em.currentBulkService)
		em.currentBulkService = em.Client.Bulk()
		em.countBulkRequest = 0
	} else {
		em.logger.Warn("No actions on current bulk service, skipping last bulk")
	}
}

//SentJobs is the number of bulk requests sent so far
func (em *ElasticManager) SentJobs() int {
	return em.totalSentJobs
}

func (em *ElasticManager) sendBulkRequest(ctx context.Context, b *elastic.BulkService) {
	defer em.WaitGroup.Done()
	em.logger.Debugf("INIT bulk worker")
	br, err := b.Do(ctx)
	if err != nil {
		em.Errchan <- err
		return
	}
	em.Respchan <- newWorkerResponse(br)
	em.logger.Debugf("END bulk worker ")
}

func newWorkerResponse(br *elastic.BulkResponse) WorkerResponse {
	return WorkerResponse{
		Succedded:    len(br.Succeeded()),
		Indexed:      len(br.Indexed()),
		Created:      len(br.Created()),
		Updated:      len(br.Updated()),
		Failed:       len(br.Failed()),
		BulkResponse: br,
	}
}

//Close waits for the bulk workers, refreshes the index and terminates the
//ElasticSearch Client. Response channels are closed afterwards.
func (em *ElasticManager) Close() error {
	em.WaitGroup.Wait()

	var err error
	if em.Client != nil {
		_, rerr := em.Client.Refresh(em.IndexName).Do(context.Background())
		err = multierr.Append(err, rerr)
		em.Client.Stop()
	}
	if em.Errchan != nil {
		close(em.Errchan)
		close(em.Respchan)
	}
	return err
}
