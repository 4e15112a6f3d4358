package leaderboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisBoard keeps obtained marks in a sorted set per exam and
// percentages in a companion hash.
type RedisBoard struct {
	Client *redis.Client
}

func NewRedisBoard(ctx context.Context, cfg RedisConfig) (*RedisBoard, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}
	return &RedisBoard{Client: c}, nil
}

func scoresKey(examID string) string { return "leaderboard:" + examID }
func pctKey(examID string) string    { return "leaderboard:" + examID + ":pct" }

func (b *RedisBoard) Record(ctx context.Context, examID string, e Entry) error {
	pipe := b.Client.TxPipeline()
	pipe.ZAdd(ctx, scoresKey(examID), redis.Z{Score: e.ObtainedMarks, Member: e.UserID})
	pipe.HSet(ctx, pctKey(examID), e.UserID, strconv.FormatFloat(e.Percentage, 'f', -1, 64))
	_, err := pipe.Exec(ctx)
	return err
}

func (b *RedisBoard) Standings(ctx context.Context, examID string, limit int) ([]Standing, error) {
	zs, err := b.Client.ZRevRangeWithScores(ctx, scoresKey(examID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(zs) == 0 {
		return []Standing{}, nil
	}
	pct, err := b.Client.HGetAll(ctx, pctKey(examID)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		user := fmt.Sprintf("%v", z.Member)
		p, _ := strconv.ParseFloat(pct[user], 64)
		entries = append(entries, Entry{UserID: user, ObtainedMarks: z.Score, Percentage: p})
	}
	return truncate(Rank(entries), limit), nil
}

func (b *RedisBoard) Close() error { return b.Client.Close() }
