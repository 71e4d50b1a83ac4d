// Package mongo provides a MongoDB-backed implementation of the
// storage.Storage interface. It is the default backend: student records
// are documents in the "students" collection, exactly where the original
// registration form kept them.
//
// Uniqueness of the roll number is made explicit with a unique index that
// New creates on startup; MongoDB then rejects a duplicate insert with a
// duplicate-key error, which we translate to storage.ErrDuplicateRollNo.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-registration/internal/config"
	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection is the name of the collection holding student documents.
const Collection = "students"

// Mongo is the concrete implementation of storage.Storage.
// A *mongo.Client manages its own connection pool and is safe for
// concurrent use.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// New connects to cfg.Storage.MongoURI, verifies the connection with a
// ping, and makes sure the unique index on rollNo exists.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Storage.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo.New: connect: %w", err)
	}

	// Connect is lazy; Ping forces a round trip so a wrong URI fails here
	// rather than on the first request.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo.New: ping: %w", err)
	}

	coll := client.Database(cfg.Storage.MongoDatabase).Collection(Collection)

	// CreateOne is idempotent for an identical index definition.
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "rollNo", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("rollNo_unique"),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo.New: create index: %w", err)
	}

	return &Mongo{client: client, coll: coll}, nil
}

func byRollNo(rollNo string) bson.D {
	return bson.D{{Key: "rollNo", Value: rollNo}}
}

// CreateStudent inserts one document. MongoDB assigns the _id.
func (m *Mongo) CreateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	if _, err := m.coll.InsertOne(ctx, student); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return types.Student{}, storage.ErrDuplicateRollNo
		}
		return types.Student{}, fmt.Errorf("CreateStudent: insert: %w", err)
	}

	return student, nil
}

// GetStudents returns every document sorted by _id. ObjectIDs start with
// a timestamp, so this is insertion order.
func (m *Mongo) GetStudents(ctx context.Context) ([]types.Student, error) {
	cursor, err := m.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("GetStudents: find: %w", err)
	}

	students := make([]types.Student, 0)
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("GetStudents: decode: %w", err)
	}

	return students, nil
}

func (m *Mongo) GetStudentByRollNo(ctx context.Context, rollNo string) (types.Student, error) {
	var student types.Student
	if err := m.coll.FindOne(ctx, byRollNo(rollNo)).Decode(&student); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Student{}, storage.ErrNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentByRollNo: %w", err)
	}

	return student, nil
}

// UpdateContactNumber is a single findOneAndUpdate returning the document
// as it is after the update.
func (m *Mongo) UpdateContactNumber(ctx context.Context, rollNo, contactNumber string) (types.Student, error) {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "contactNumber", Value: contactNumber}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var student types.Student
	err := m.coll.FindOneAndUpdate(ctx, byRollNo(rollNo), update, opts).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Student{}, storage.ErrNotFound
		}
		return types.Student{}, fmt.Errorf("UpdateContactNumber: %w", err)
	}

	return student, nil
}

func (m *Mongo) DeleteStudentByRollNo(ctx context.Context, rollNo string) error {
	if err := m.coll.FindOneAndDelete(ctx, byRollNo(rollNo)).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("DeleteStudentByRollNo: %w", err)
	}

	return nil
}

// Close disconnects the client, waiting for in-use connections up to the
// context deadline.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
