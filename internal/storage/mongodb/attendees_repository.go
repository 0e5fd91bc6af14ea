package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Philip-Ajayi/SHC/internal/domain/attendees"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const attendeesCollection = "attendees"

// AttendeesRepository implements attendees.Repository on a MongoDB collection.
// The unique index on email is the sole arbiter of the registration
// uniqueness invariant; a duplicate-key error surfaces as ErrDuplicateEmail.
type AttendeesRepository struct {
	coll *mongo.Collection
}

func NewAttendeesRepository(ctx context.Context, db *mongo.Database) (*AttendeesRepository, error) {
	coll := db.Collection(attendeesCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("ensure email index: %w", err)
	}

	return &AttendeesRepository{coll: coll}, nil
}

type attendeeDoc struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	FirstName    string        `bson:"first_name"`
	LastName     string        `bson:"last_name"`
	Phone        string        `bson:"phone,omitempty"`
	Email        string        `bson:"email"`
	Address      string        `bson:"address,omitempty"`
	Year         int           `bson:"year"`
	Attendance   []int         `bson:"attendance"`
	Unsubscribed bool          `bson:"unsubscribed"`
	CreatedAt    time.Time     `bson:"created_at"`
}

func (d attendeeDoc) toDomain() attendees.Attendee {
	attendance := d.Attendance
	if attendance == nil {
		attendance = []int{}
	}
	return attendees.Attendee{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Phone:        d.Phone,
		Email:        d.Email,
		Address:      d.Address,
		Year:         d.Year,
		Attendance:   attendance,
		Unsubscribed: d.Unsubscribed,
		CreatedAt:    d.CreatedAt,
	}
}

func (r *AttendeesRepository) Create(ctx context.Context, params attendees.CreateParams) (*attendees.Attendee, error) {
	doc := attendeeDoc{
		FirstName:  params.FirstName,
		LastName:   params.LastName,
		Phone:      params.Phone,
		Email:      params.Email,
		Address:    params.Address,
		Year:       params.Year,
		Attendance: []int{},
		CreatedAt:  time.Now().UTC(),
	}

	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, attendees.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert attendee: %w", err)
	}

	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	doc.ID = id
	attendee := doc.toDomain()
	return &attendee, nil
}

func (r *AttendeesRepository) FindByEmail(ctx context.Context, email string) (*attendees.Attendee, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AttendeesRepository) FindByEmailYear(ctx context.Context, email string, year int) (*attendees.Attendee, error) {
	return r.findOne(ctx, bson.M{"email": email, "year": year})
}

func (r *AttendeesRepository) FindByID(ctx context.Context, id string) (*attendees.Attendee, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, attendees.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AttendeesRepository) FindBySessionYear(ctx context.Context, session int, year int) ([]attendees.Attendee, error) {
	return r.findMany(ctx, bson.M{"attendance": session, "year": year})
}

func (r *AttendeesRepository) FindByYear(ctx context.Context, year int) ([]attendees.Attendee, error) {
	return r.findMany(ctx, bson.M{"year": year})
}

func (r *AttendeesRepository) FindNoAttendance(ctx context.Context, year int) ([]attendees.Attendee, error) {
	return r.findMany(ctx, bson.M{"year": year, "attendance": bson.M{"$size": 0}})
}

func (r *AttendeesRepository) FindSubscribed(ctx context.Context) ([]attendees.Attendee, error) {
	return r.findMany(ctx, bson.M{"unsubscribed": false})
}

func (r *AttendeesRepository) AddSession(ctx context.Context, id string, session int) error {
	return r.updateByID(ctx, id, bson.M{"$addToSet": bson.M{"attendance": session}})
}

func (r *AttendeesRepository) RemoveSession(ctx context.Context, id string, session int) error {
	return r.updateByID(ctx, id, bson.M{"$pull": bson.M{"attendance": session}})
}

func (r *AttendeesRepository) Unsubscribe(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"unsubscribed": true}})
}

func (r *AttendeesRepository) findOne(ctx context.Context, filter bson.M) (*attendees.Attendee, error) {
	var doc attendeeDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, attendees.ErrNotFound
		}
		return nil, fmt.Errorf("find attendee: %w", err)
	}
	attendee := doc.toDomain()
	return &attendee, nil
}

func (r *AttendeesRepository) findMany(ctx context.Context, filter bson.M) ([]attendees.Attendee, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find attendees: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []attendeeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode attendees: %w", err)
	}

	result := make([]attendees.Attendee, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toDomain())
	}
	return result, nil
}

func (r *AttendeesRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return attendees.ErrNotFound
	}
	result, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update attendee: %w", err)
	}
	if result.MatchedCount == 0 {
		return attendees.ErrNotFound
	}
	return nil
}
