package files

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const maxRedisTxAttempts = 5

// RedisRepo implements Repo on Redis: one hash per record, a sorted set
// index scored by creation time in microseconds, and a clock key that keeps
// those scores strictly increasing across writers.
type RedisRepo struct {
	Client *redis.Client
	Prefix string
}

type redisRecord struct {
	OriginID    string `json:"origin_id"`
	FileName    string `json:"file_name"`
	FileSize    *int64 `json:"file_size,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	Category    string `json:"category"`
	OwnerChatID string `json:"owner_chat_id"`
}

// NewRedisRepo constructs a RedisRepo. An empty prefix defaults to "files".
func NewRedisRepo(client *redis.Client, prefix string) *RedisRepo {
	if prefix == "" {
		prefix = "files"
	}
	return &RedisRepo{Client: client, Prefix: prefix}
}

func (r *RedisRepo) clockKey() string          { return r.Prefix + ":clock" }
func (r *RedisRepo) indexKey() string          { return r.Prefix + ":index" }
func (r *RedisRepo) recordKey(id string) string { return r.Prefix + ":rec:" + id }

// Save stores the record using the Redis server clock for CreatedAt.
func (r *RedisRepo) Save(ctx context.Context, rec FileRecord) (FileRecord, error) {
	rec.ID = uuid.NewString()
	data, err := json.Marshal(redisRecord{
		OriginID:    rec.OriginID,
		FileName:    rec.FileName,
		FileSize:    rec.FileSize,
		MimeType:    rec.MimeType,
		Category:    string(rec.Category),
		OwnerChatID: rec.OwnerChatID,
	})
	if err != nil {
		return FileRecord{}, fmt.Errorf("encode record: %w", err)
	}

	clockKey := r.clockKey()
	var micros int64
	for attempt := 0; attempt < maxRedisTxAttempts; attempt++ {
		err = r.Client.Watch(ctx, func(tx *redis.Tx) error {
			now, err := tx.Time(ctx).Result()
			if err != nil {
				return err
			}
			micros = now.UnixMicro()
			last, err := tx.Get(ctx, clockKey).Int64()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			if micros <= last {
				micros = last + 1
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, clockKey, micros, 0)
				pipe.HSet(ctx, r.recordKey(rec.ID), "data", data, "created_at", micros)
				pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(micros), Member: rec.ID})
				return nil
			})
			return err
		}, clockKey)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return FileRecord{}, err
	}

	rec.CreatedAt = time.UnixMicro(micros).UTC()
	return rec, nil
}

// ListAll returns every indexed record, newest first.
func (r *RedisRepo) ListAll(ctx context.Context) ([]FileRecord, error) {
	ids, err := r.Client.ZRevRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []FileRecord{}, nil
	}

	cmds := make([]*redis.SliceCmd, len(ids))
	_, err = r.Client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HMGet(ctx, r.recordKey(id), "data", "created_at")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]FileRecord, 0, len(ids))
	for i, cmd := range cmds {
		vals := cmd.Val()
		if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
			// index entry without a record body; skip rather than fail the listing
			continue
		}
		rec, err := decodeRedisRecord(ids[i], vals[0], vals[1])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeRedisRecord(id string, rawData, rawCreated any) (FileRecord, error) {
	data, ok := rawData.(string)
	if !ok {
		return FileRecord{}, fmt.Errorf("record %s: unexpected data type %T", id, rawData)
	}
	created, ok := rawCreated.(string)
	if !ok {
		return FileRecord{}, fmt.Errorf("record %s: unexpected created_at type %T", id, rawCreated)
	}
	var stored redisRecord
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return FileRecord{}, fmt.Errorf("record %s: decode: %w", id, err)
	}
	micros, err := strconv.ParseInt(created, 10, 64)
	if err != nil {
		return FileRecord{}, fmt.Errorf("record %s: created_at: %w", id, err)
	}
	return FileRecord{
		ID:          id,
		OriginID:    stored.OriginID,
		FileName:    stored.FileName,
		FileSize:    stored.FileSize,
		MimeType:    stored.MimeType,
		Category:    Category(stored.Category),
		OwnerChatID: stored.OwnerChatID,
		CreatedAt:   time.UnixMicro(micros).UTC(),
	}, nil
}

var _ Repo = (*RedisRepo)(nil)
