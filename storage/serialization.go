// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/pulse/core"
)

// FeedbackRecordMUS is the MUS serializer for core.FeedbackRecord.
// Timestamps are stored as Unix microseconds in UTC.
var FeedbackRecordMUS = feedbackRecordMUS{}

type feedbackRecordMUS struct{}

// Marshal writes the record into bs, returning the number of bytes written.
// bs must be at least Size(record) bytes.
func (s feedbackRecordMUS) Marshal(r core.FeedbackRecord, bs []byte) (n int) {
	n = ord.String.Marshal(r.ID, bs)
	n += varint.Int64.Marshal(r.ReceivedAt.UnixMicro(), bs[n:])
	n += ord.String.Marshal(r.SubmitterID, bs[n:])
	n += ord.String.Marshal(r.Source, bs[n:])
	n += ord.String.Marshal(r.ProductCategory, bs[n:])
	n += ord.String.Marshal(r.AudienceType, bs[n:])
	n += ord.String.Marshal(r.Urgency, bs[n:])
	n += ord.String.Marshal(r.FeedbackKind, bs[n:])
	n += ord.String.Marshal(r.Region, bs[n:])
	n += ord.String.Marshal(r.Summary, bs[n:])
	n += ord.String.Marshal(r.RecommendedAction, bs[n:])
	n += ord.String.Marshal(r.Status, bs[n:])
	n += ord.String.Marshal(r.OriginalText, bs[n:])
	n += varint.Int.Marshal(r.SentimentScore, bs[n:])
	n += ord.String.Marshal(r.NPSClass, bs[n:])
	return n
}

// Unmarshal reads a record from bs, returning it along with the number of
// bytes consumed.
func (s feedbackRecordMUS) Unmarshal(bs []byte) (r core.FeedbackRecord, n int, err error) {
	var n1 int
	if r.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	r.ReceivedAt = time.UnixMicro(micros).UTC()
	strFields := []*string{
		&r.SubmitterID, &r.Source, &r.ProductCategory, &r.AudienceType,
		&r.Urgency, &r.FeedbackKind, &r.Region, &r.Summary,
		&r.RecommendedAction, &r.Status, &r.OriginalText,
	}
	for _, field := range strFields {
		if *field, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if r.SentimentScore, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.NPSClass, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

// Size returns the number of bytes needed to marshal the record.
func (s feedbackRecordMUS) Size(r core.FeedbackRecord) (size int) {
	size = ord.String.Size(r.ID)
	size += varint.Int64.Size(r.ReceivedAt.UnixMicro())
	size += ord.String.Size(r.SubmitterID)
	size += ord.String.Size(r.Source)
	size += ord.String.Size(r.ProductCategory)
	size += ord.String.Size(r.AudienceType)
	size += ord.String.Size(r.Urgency)
	size += ord.String.Size(r.FeedbackKind)
	size += ord.String.Size(r.Region)
	size += ord.String.Size(r.Summary)
	size += ord.String.Size(r.RecommendedAction)
	size += ord.String.Size(r.Status)
	size += ord.String.Size(r.OriginalText)
	size += varint.Int.Size(r.SentimentScore)
	size += ord.String.Size(r.NPSClass)
	return size
}

// MarshalFeedbackRecord serializes a FeedbackRecord to bytes.
func MarshalFeedbackRecord(record *core.FeedbackRecord) []byte {
	buf := make([]byte, FeedbackRecordMUS.Size(*record))
	FeedbackRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalFeedbackRecord deserializes a FeedbackRecord from bytes.
func UnmarshalFeedbackRecord(data []byte) (*core.FeedbackRecord, error) {
	record, _, err := FeedbackRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}
