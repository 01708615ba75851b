// Copyright 2025 The octopus-api Authors
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

package main

import (
	"fmt"
	"time"
)

// bucketIndex maps a timestamp onto a zero-based reporting-bucket index:
// the truncating division of elapsed whole seconds since referenceStart by
// the bucket duration. A timestamp before the reference start is a caller
// bug and fails fast rather than yielding a negative index.
func bucketIndex(ts, referenceStart time.Time, bucketDuration time.Duration) (int, error) {
	elapsed := int64(ts.Sub(referenceStart) / time.Second)
	if elapsed < 0 {
		return 0, fmt.Errorf("timestamp %s precedes reference start %s",
			ts.Format(time.RFC3339), referenceStart.Format(time.RFC3339))
	}

	secs := int64(bucketDuration / time.Second)
	if secs <= 0 {
		return 0, fmt.Errorf("bucket duration %s is not a positive whole-second duration", bucketDuration)
	}

	return int(elapsed / secs), nil
}

// dayIndex maps a timestamp onto a zero-based day index relative to
// referenceStart, using 86400-second days.
func dayIndex(ts, referenceStart time.Time) (int, error) {
	return bucketIndex(ts, referenceStart, SecondsPerDay*time.Second)
}
