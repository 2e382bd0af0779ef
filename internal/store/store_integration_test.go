package store

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	catalogerrors "github.com/scentworks/perfumeshop/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const skipIntegrationTests = "PERFUMESHOP_SKIP_INTEGRATION_TESTS"

// ProductStoreSuite is a test suite for the MongoDB-backed ProductStore.
type ProductStoreSuite struct {
	suite.Suite                               // Embedding testify suite for structured testing
	mongoContainer *mongodb.MongoDBContainer  // MongoDB container for integration tests
	client         *mongo.Client              // MongoDB client for integration tests
	db             *mongo.Database            // Database handle the store under test uses
	store          ProductStore               //
	logger         *slog.Logger               // Logger for the test suite
	ctx            context.Context            // Context for the test suite, used for cancellation and timeouts
}

// SetupSuite initializes the test suite by setting up a MongoDB container.
func (s *ProductStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// 1. Start a MongoDB container. Wait for the container to be ready.
	s.mongoContainer, err = mongodb.Run(s.ctx, "mongo:7")
	require.NoError(s.T(), err, "Failed to run MongoDB container")

	// 2. Get the connection string from the container
	connStr, err := s.mongoContainer.ConnectionString(s.ctx)
	require.NoError(s.T(), err, "Failed to get connection string from container")

	// 3. Create a new mongo client using the connection string
	s.client, err = mongo.Connect(s.ctx, options.Client().ApplyURI(connStr))
	require.NoError(s.T(), err, "Failed to create mongo client")

	// 3.1 Ping the database to ensure the connection is established
	for i := range 10 {
		s.logger.Info("Pinging MongoDB", "attempt", i+1)
		err = s.client.Ping(s.ctx, nil)
		if err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to MongoDB after retries")

	s.db = s.client.Database("perfume_shop_test")
	s.store = NewMongoStore(s.db)
}

// TearDownSuite cleans up the container and client after all tests have run.
func (s *ProductStoreSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Disconnect(s.ctx)
	}
	if s.mongoContainer != nil {
		_ = s.mongoContainer.Terminate(s.ctx)
	}
}

// SetupTest isolates each test case by dropping the product collection.
func (s *ProductStoreSuite) SetupTest() {
	err := s.db.Collection(collectionName).Drop(s.ctx)
	require.NoError(s.T(), err, "Failed to drop product collection")
}

func (s *ProductStoreSuite) TestInsertAndFindByID() {
	// given
	description := "A bright, sparkling blend."
	product := Product{
		Title:       "Citrus Bloom Eau de Parfum",
		Description: &description,
		Price:       68.0,
		Category:    "perfume",
		InStock:     true,
		Rating:      4.7,
		Notes:       []string{"bergamot", "neroli", "white musk"},
	}

	// when
	id, err := s.store.Insert(s.ctx, product)

	// then
	require.NoError(s.T(), err)
	assert.False(s.T(), id.IsZero(), "inserted id should be assigned")

	found, err := s.store.FindByID(s.ctx, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), id, found.ID)
	assert.Equal(s.T(), product.Title, found.Title)
	assert.Equal(s.T(), product.Price, found.Price)
	assert.Equal(s.T(), product.Notes, found.Notes)
}

func (s *ProductStoreSuite) TestFindByID_NotFound() {
	// when
	_, err := s.store.FindByID(s.ctx, primitive.NewObjectID())

	// then
	assert.ErrorIs(s.T(), err, catalogerrors.ErrProductNotFound)
}

func (s *ProductStoreSuite) TestFind_TitleFilterIsCaseInsensitive() {
	// given
	titles := []string{"Citrus Bloom", "Amber Leaf", "Verdant Whisper"}
	for _, title := range titles {
		_, err := s.store.Insert(s.ctx, Product{Title: title, Notes: []string{}})
		require.NoError(s.T(), err)
	}

	// when
	list, err := s.store.Find(s.ctx, "bloom", 50)

	// then
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "Citrus Bloom", list[0].Title)
}

func (s *ProductStoreSuite) TestFind_RespectsLimit() {
	// given
	for i := 0; i < 5; i++ {
		_, err := s.store.Insert(s.ctx, Product{Title: "Perfume", Notes: []string{}})
		require.NoError(s.T(), err)
	}

	// when
	list, err := s.store.Find(s.ctx, "", 3)

	// then
	require.NoError(s.T(), err)
	assert.Len(s.T(), list, 3)
}

func (s *ProductStoreSuite) TestCount() {
	// given
	count, err := s.store.Count(s.ctx)
	require.NoError(s.T(), err)
	assert.Zero(s.T(), count)

	// when
	_, err = s.store.Insert(s.ctx, Product{Title: "Citrus Bloom", Notes: []string{}})
	require.NoError(s.T(), err)

	// then
	count, err = s.store.Count(s.ctx)
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 1, count)
}

func (s *ProductStoreSuite) TestCollectionNames() {
	// given
	_, err := s.store.Insert(s.ctx, Product{Title: "Citrus Bloom", Notes: []string{}})
	require.NoError(s.T(), err)

	// when
	names, err := s.store.CollectionNames(s.ctx)

	// then
	require.NoError(s.T(), err)
	assert.Contains(s.T(), names, collectionName)
}

func (s *ProductStoreSuite) TestRecordRoundTripKeepsBsonShape() {
	// The native id is stored under the reserved _id key and nothing else
	// carries it; this is the store half of the wire-shaping contract.
	id, err := s.store.Insert(s.ctx, Product{Title: "Citrus Bloom", Notes: []string{}})
	require.NoError(s.T(), err)

	var raw bson.M
	err = s.db.Collection(collectionName).FindOne(s.ctx, bson.M{"_id": id}).Decode(&raw)
	require.NoError(s.T(), err)
	assert.Contains(s.T(), raw, "_id")
	assert.NotContains(s.T(), raw, "id")
}

func TestProductStoreSuite(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "true" {
		t.Skip("Skipping integration tests")
	}
	suite.Run(t, new(ProductStoreSuite))
}
