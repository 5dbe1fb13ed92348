package layouts

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/dungeon-api/internal/redis"
)

const (
	layoutKeyPrefix  = "layout:"
	ownerIndexPrefix = "layout:owner:"

	// Error messages
	errLayoutNil     = "layout cannot be nil"
	errLayoutIDEmpty = "layout ID cannot be empty"
	errOwnerIDEmpty  = "owner ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis layout repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed layout repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Use real clock if none provided
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Layout == nil {
		return nil, errors.InvalidArgument(errLayoutNil)
	}
	if input.Layout.ID == "" {
		return nil, errors.InvalidArgument(errLayoutIDEmpty)
	}
	if input.Layout.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	key := layoutKeyPrefix + input.Layout.ID

	// Check if already exists
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("layout with ID %s already exists", input.Layout.ID)
	}

	now := r.clock.Now().Unix()
	layout := *input.Layout
	layout.CreatedAt = now
	layout.UpdatedAt = now

	data, err := json.Marshal(&layout)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal layout")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, ownerIndexPrefix+layout.OwnerID, layout.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create layout")
	}

	return &CreateOutput{Layout: &layout}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errLayoutIDEmpty)
	}

	key := layoutKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("layout with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get layout")
	}

	var layout entities.LayoutData
	if err := json.Unmarshal([]byte(result), &layout); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal layout")
	}

	return &GetOutput{Layout: &layout}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Layout == nil {
		return nil, errors.InvalidArgument(errLayoutNil)
	}
	if input.Layout.ID == "" {
		return nil, errors.InvalidArgument(errLayoutIDEmpty)
	}

	key := layoutKeyPrefix + input.Layout.ID

	// Check if exists
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("layout with ID %s not found", input.Layout.ID)
	}

	layout := *input.Layout
	layout.UpdatedAt = r.clock.Now().Unix()

	data, err := json.Marshal(&layout)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal layout")
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update layout")
	}

	return &UpdateOutput{Layout: &layout}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errLayoutIDEmpty)
	}

	// Get layout to find the owner index entry
	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, layoutKeyPrefix+input.ID)
	if getOutput.Layout.OwnerID != "" {
		pipe.SRem(ctx, ownerIndexPrefix+getOutput.Layout.OwnerID, input.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete layout")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	ids, err := r.client.SMembers(ctx, ownerIndexPrefix+input.OwnerID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list layouts for owner")
	}

	layouts := make([]*entities.LayoutData, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			// A stale index entry means the layout key expired or was
			// removed out of band; drop the entry and keep going
			if errors.IsNotFound(err) {
				r.client.SRem(ctx, ownerIndexPrefix+input.OwnerID, id)
				continue
			}
			return nil, err
		}
		layouts = append(layouts, getOutput.Layout)
	}

	return &ListByOwnerOutput{Layouts: layouts}, nil
}
