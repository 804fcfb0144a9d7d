package history

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/pathviz/pkg/errors"
)

const (
	defaultMongoURI = "mongodb://localhost:27017"
	defaultDatabase = "pathviz"
	runsCollection  = "runs"
)

// MongoStore is a run log in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	runs   *mongo.Collection
	now    func() time.Time
}

// runDoc is the stored form of a Run. Distance is nil when unreachable.
type runDoc struct {
	ID         string    `bson:"_id"`
	At         time.Time `bson:"at"`
	GraphHash  string    `bson:"graph_hash"`
	Start      string    `bson:"start"`
	End        string    `bson:"end"`
	Path       []string  `bson:"path"`
	Distance   *float64  `bson:"distance"`
	Visited    int       `bson:"visited"`
	Formats    []string  `bson:"formats,omitempty"`
	DurationNS int64     `bson:"duration_ns"`
	CacheHit   bool      `bson:"cache_hit"`
}

// OpenMongo connects to uri, pings the server, and ensures the index on at.
// Empty arguments select localhost and the "pathviz" database.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		uri = defaultMongoURI
	}
	if database == "" {
		database = defaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(3*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	runs := client.Database(database).Collection(runsCollection)
	_, err = runs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create mongo index: %w", err)
	}
	return &MongoStore{client: client, runs: runs, now: time.Now}, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Record stores r. A zero At is set to the current time.
func (s *MongoStore) Record(ctx context.Context, r Run) error {
	if r.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "history run has no id")
	}
	if r.At.IsZero() {
		r.At = s.now()
	}
	if _, err := s.runs.InsertOne(ctx, toDoc(r)); err != nil {
		return fmt.Errorf("record run %s: %w", r.ID, err)
	}
	return nil
}

// List returns up to limit runs, newest first. A limit <= 0 means 20.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))
	return s.find(ctx, bson.D{}, opts)
}

// Get returns the run whose id is or starts with id.
func (s *MongoStore) Get(ctx context.Context, id string) (Run, error) {
	if id == "" {
		return Run{}, errors.New(errors.ErrCodeInvalidInput, "run id is required")
	}
	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(id)}}
	found, err := s.find(ctx, filter, options.Find().SetLimit(2))
	if err != nil {
		return Run{}, err
	}
	switch len(found) {
	case 0:
		return Run{}, errors.New(errors.ErrCodeNotFound, "run %s not found", id)
	case 1:
		return found[0], nil
	default:
		return Run{}, errors.New(errors.ErrCodeInvalidInput, "run id %s is ambiguous", id)
	}
}

// Clear deletes every run and returns how many were removed.
func (s *MongoStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.runs.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) find(ctx context.Context, filter any, opts *options.FindOptions) ([]Run, error) {
	cur, err := s.runs.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	var docs []runDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode runs: %w", err)
	}
	out := make([]Run, len(docs))
	for i, d := range docs {
		out[i] = fromDoc(d)
	}
	return out, nil
}

func toDoc(r Run) runDoc {
	d := runDoc{
		ID:         r.ID,
		At:         r.At.UTC(),
		GraphHash:  r.GraphHash,
		Start:      r.Start,
		End:        r.End,
		Path:       r.Path,
		Visited:    r.Visited,
		Formats:    r.Formats,
		DurationNS: int64(r.Duration),
		CacheHit:   r.CacheHit,
	}
	if !math.IsInf(r.Distance, 0) && !math.IsNaN(r.Distance) {
		d.Distance = &r.Distance
	}
	return d
}

func fromDoc(d runDoc) Run {
	r := Run{
		ID:        d.ID,
		At:        d.At,
		GraphHash: d.GraphHash,
		Start:     d.Start,
		End:       d.End,
		Path:      d.Path,
		Distance:  math.Inf(1),
		Visited:   d.Visited,
		Formats:   d.Formats,
		Duration:  time.Duration(d.DurationNS),
		CacheHit:  d.CacheHit,
	}
	if d.Distance != nil {
		r.Distance = *d.Distance
	}
	return r
}

var _ Log = (*MongoStore)(nil)
