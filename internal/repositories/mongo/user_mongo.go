package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edubase/school-service/internal/cache"
	"github.com/edubase/school-service/internal/models"
	"github.com/edubase/school-service/internal/repositories"
)

const userCacheTTL = 15 * time.Minute

// UserMongo persists directory records in the users collection. Lookups by
// id go through a short-lived Redis cache when a client is configured.
type UserMongo struct {
	c     *mongo.Collection
	cache *cache.Helper
}

func NewUserMongo(db *mongo.Database, redisClient *redis.Client) repositories.UserRepository {
	return &UserMongo{
		c:     db.Collection("users"),
		cache: cache.NewHelper(redisClient, "user:", userCacheTTL),
	}
}

func (u *UserMongo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var cached models.User
	if err := u.cache.Get(ctx, id, &cached); err == nil {
		return &cached, nil
	}

	var user models.User
	if err := u.c.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	// Cache failures only cost the next lookup a round trip.
	_ = u.cache.Set(ctx, id, &user)
	return &user, nil
}

func (u *UserMongo) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cur, err := u.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}
	return decodeUsers(ctx, cur)
}

func (u *UserMongo) List(ctx context.Context) ([]*models.User, error) {
	cur, err := u.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return decodeUsers(ctx, cur)
}

func (u *UserMongo) ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	cur, err := u.c.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return decodeUsers(ctx, cur)
}

func (u *UserMongo) Create(ctx context.Context, user *models.User) error {
	if _, err := u.c.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (u *UserMongo) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	res, err := u.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}

	// The cached copy carries the old role.
	_ = u.cache.Delete(ctx, id)
	return nil
}

func (u *UserMongo) ExistsByID(ctx context.Context, id string) (bool, error) {
	count, err := u.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return count > 0, nil
}

func decodeUsers(ctx context.Context, cur *mongo.Cursor) ([]*models.User, error) {
	defer cur.Close(ctx)

	var users []*models.User
	for cur.Next(ctx) {
		var user models.User
		if err := cur.Decode(&user); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, &user)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
