package cache

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DefaultMaxKeyLength is the serialized length beyond which the hashed
// serializer digests the argument segments of a key.
const DefaultMaxKeyLength = 512

// hashedKeySerializer wraps another serializer and replaces oversized keys
// with `statement::xxh64:<digest>`. Keeping the statement id as a literal
// prefix preserves namespace reasoning (and prefix invalidation) while the
// digest bounds key size for argument-heavy queries.
type hashedKeySerializer struct {
	inner     KeySerializer
	maxLength int
}

// NewHashedKeySerializer wraps inner with an xxhash digest for keys longer
// than maxLength. A maxLength of zero or below uses DefaultMaxKeyLength.
func NewHashedKeySerializer(inner KeySerializer, maxLength int) KeySerializer {
	if inner == nil {
		inner = NewDefaultKeySerializer()
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxKeyLength
	}
	return &hashedKeySerializer{inner: inner, maxLength: maxLength}
}

func (s *hashedKeySerializer) SerializeKey(statement string, args ...any) string {
	key := s.inner.SerializeKey(statement, args...)
	if len(key) <= s.maxLength {
		return key
	}

	suffix := strings.TrimPrefix(key, statement)
	digest := xxhash.Sum64String(suffix)
	return fmt.Sprintf("%s%sxxh64:%016x", statement, KeySeparator, digest)
}
