// backend/pkg/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"mock-platform/internal/models"
)

// Question sets are cached for the length of a working day; catalog edits
// are rare administrative actions, and moderation invalidates explicitly.
const questionSetTTL = 24 * time.Hour

type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: client,
		ctx:    context.Background(),
	}
}

func questionSetKey(quizID uint) string {
	return fmt.Sprintf("questionset:%d", quizID)
}

func (c *RedisCache) SetQuestionSet(set *models.QuestionSetDTO) error {
	data, err := json.Marshal(set)
	if err != nil {
		return err
	}

	return c.client.Set(c.ctx, questionSetKey(set.QuizID), data, questionSetTTL).Err()
}

func (c *RedisCache) GetQuestionSet(quizID uint) (*models.QuestionSetDTO, error) {
	data, err := c.client.Get(c.ctx, questionSetKey(quizID)).Bytes()
	if err != nil {
		return nil, err
	}

	var set models.QuestionSetDTO
	err = json.Unmarshal(data, &set)
	return &set, err
}

func (c *RedisCache) InvalidateQuestionSet(quizID uint) error {
	return c.client.Del(c.ctx, questionSetKey(quizID)).Err()
}

// InvalidateAllQuestionSets drops every cached snapshot. Used after bulk
// moderation, where touched questions can sit in any number of quizzes.
func (c *RedisCache) InvalidateAllQuestionSets() error {
	keys, err := c.client.Keys(c.ctx, "questionset:*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(c.ctx, keys...).Err()
}
