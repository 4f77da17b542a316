package services

import (
	"chat-relay/domain"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// NormalizeMemberIDs accepts raw ids, numeric strings or objects carrying an
// "id" field, as decoded from JSON. Non numeric entries are dropped and
// duplicates removed, keeping the first occurrence.
func NormalizeMemberIDs(raw []any) []domain.UserID {
	ids := lo.FilterMap(raw, func(item any, _ int) (domain.UserID, bool) {
		if obj, ok := item.(map[string]any); ok {
			item = obj["id"]
		}
		return toUserID(item)
	})
	return lo.Uniq(ids)
}

func toUserID(v any) (domain.UserID, bool) {
	switch id := v.(type) {
	case float64:
		if math.IsNaN(id) || math.IsInf(id, 0) || id != math.Trunc(id) {
			return 0, false
		}
		// float64(math.MaxInt64) rounds up to 2^63, which no int64 can hold.
		if id < math.MinInt64 || id >= 1<<63 {
			return 0, false
		}
		return domain.UserID(id), true
	case int:
		return domain.UserID(id), true
	case int64:
		return domain.UserID(id), true
	case domain.UserID:
		return id, true
	case json.Number:
		n, err := id.Int64()
		return domain.UserID(n), err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		return domain.UserID(n), err == nil
	default:
		return 0, false
	}
}
