// File: /repositories/event_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"aquaevents-api/database"
	"aquaevents-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrEventStoreUnavailable is returned by write paths when MongoDB cannot be
// reached. Read paths degrade to empty results instead.
var ErrEventStoreUnavailable = errors.New("event store not available")

const eventsCollection = "events"

// EventRepository wraps the MongoDB events collection that backs the public
// calendar.
type EventRepository struct {
	mongo *database.Mongo
}

func NewEventRepository(m *database.Mongo) *EventRepository {
	return &EventRepository{mongo: m}
}

func (r *EventRepository) collection(ctx context.Context) *mongo.Collection {
	db := r.mongo.Database(ctx)
	if db == nil {
		return nil
	}
	return db.Collection(eventsCollection)
}

// FindBySubmissionID returns the published mirror of a submission, or nil
// when none exists.
func (r *EventRepository) FindBySubmissionID(ctx context.Context, submissionID string) (*models.PublicEvent, error) {
	coll := r.collection(ctx)
	if coll == nil {
		return nil, ErrEventStoreUnavailable
	}

	var event models.PublicEvent
	err := coll.FindOne(ctx, bson.M{"submissionId": submissionID}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query event by submission id: %w", err)
	}
	return &event, nil
}

// FindByExternalID returns a synced event by its upstream identifier, or nil.
func (r *EventRepository) FindByExternalID(ctx context.Context, externalID string) (*models.PublicEvent, error) {
	coll := r.collection(ctx)
	if coll == nil {
		return nil, ErrEventStoreUnavailable
	}

	var event models.PublicEvent
	err := coll.FindOne(ctx, bson.M{"externalId": externalID}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query event by external id: %w", err)
	}
	return &event, nil
}

// GetByID resolves an event by its URL slug or by ObjectID hex.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.PublicEvent, error) {
	coll := r.collection(ctx)
	if coll == nil {
		return nil, nil
	}

	var event models.PublicEvent
	err := coll.FindOne(ctx, bson.M{"seo.slug": id}).Decode(&event)
	if err == nil {
		return &event, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to query event: %w", err)
	}

	oid, oidErr := primitive.ObjectIDFromHex(id)
	if oidErr != nil {
		return nil, nil
	}
	err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) Insert(ctx context.Context, event *models.PublicEvent) (string, error) {
	coll := r.collection(ctx)
	if coll == nil {
		return "", ErrEventStoreUnavailable
	}

	res, err := coll.InsertOne(ctx, event)
	if err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return oid.Hex(), nil
}

// Update replaces the stored document in place, keeping the store-assigned id.
func (r *EventRepository) Update(ctx context.Context, id string, event *models.PublicEvent) error {
	coll := r.collection(ctx)
	if coll == nil {
		return ErrEventStoreUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid event id %q: %w", id, err)
	}

	event.ID = oid
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": oid}, event)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	coll := r.collection(ctx)
	if coll == nil {
		return ErrEventStoreUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid event id %q: %w", id, err)
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns upcoming events sorted by date. Unavailable store yields an
// empty slice.
func (r *EventRepository) List(ctx context.Context, limit int64, discipline, region string) ([]models.PublicEvent, error) {
	coll := r.collection(ctx)
	if coll == nil {
		return []models.PublicEvent{}, nil
	}

	query := bson.M{
		"date": bson.M{"$gte": time.Now().Format("2006-01-02")},
	}
	if discipline != "" {
		query["discipline"] = discipline
	}
	if region != "" {
		query["location.region"] = region
	}

	if limit <= 0 {
		limit = 100
	}

	cur, err := coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}).SetLimit(limit))
	if err != nil {
		log.Printf("[MongoDB] Error fetching events: %v", err)
		return []models.PublicEvent{}, nil
	}

	events := []models.PublicEvent{}
	if err := cur.All(ctx, &events); err != nil {
		log.Printf("[MongoDB] Error decoding events: %v", err)
		return []models.PublicEvent{}, nil
	}
	return events, nil
}

// Stats aggregates calendar counts; zero values when the store is down.
func (r *EventRepository) Stats(ctx context.Context) (*models.EventStats, error) {
	stats := &models.EventStats{ByDiscipline: []models.DisciplineCount{}}

	coll := r.collection(ctx)
	if coll == nil {
		return stats, nil
	}

	today := time.Now().Format("2006-01-02")

	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("[MongoDB] Error counting events: %v", err)
		return stats, nil
	}
	upcoming, err := coll.CountDocuments(ctx, bson.M{"date": bson.M{"$gte": today}})
	if err != nil {
		log.Printf("[MongoDB] Error counting upcoming events: %v", err)
		return stats, nil
	}

	cur, err := coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": today}}}},
		{{Key: "$group", Value: bson.M{"_id": "$discipline", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	})
	if err != nil {
		log.Printf("[MongoDB] Error aggregating events: %v", err)
		return stats, nil
	}
	var byDiscipline []models.DisciplineCount
	if err := cur.All(ctx, &byDiscipline); err != nil {
		log.Printf("[MongoDB] Error decoding aggregation: %v", err)
		byDiscipline = []models.DisciplineCount{}
	}

	stats.Total = total
	stats.Upcoming = upcoming
	stats.ByDiscipline = byDiscipline
	return stats, nil
}
