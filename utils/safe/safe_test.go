/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package safe_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/lookup/utils/safe"
)

func TestCall(t *testing.T) {
	res := safe.Call(func() (any, error) { return 7, nil })
	assert.Equal(t, 7, res.Value)
	assert.NoError(t, res.Err)

	boom := errors.New("boom")
	res = safe.Call(func() (any, error) { return nil, boom })
	assert.ErrorIs(t, res.Err, boom)
	assert.False(t, safe.IsPanic(res.Err))
}

func TestCall_RecoversPanics(t *testing.T) {
	res := safe.Call(func() (any, error) { panic("bad state") })
	require.Error(t, res.Err)
	assert.True(t, safe.IsPanic(res.Err))
	assert.Nil(t, res.Value)
	assert.Equal(t, "panic: bad state", res.Err.Error())

	var pe *safe.PanicError
	require.ErrorAs(t, res.Err, &pe)
	assert.Equal(t, "bad state", pe.Value)
	assert.NotEmpty(t, pe.Stack)
	assert.Nil(t, pe.Unwrap())
}

func TestCall_PanicWithError(t *testing.T) {
	cause := errors.New("cause")
	res := safe.Call(func() (any, error) { panic(fmt.Errorf("wrapped: %w", cause)) })
	assert.ErrorIs(t, res.Err, cause)
}

func TestCall_Elapsed(t *testing.T) {
	res := safe.Call(func() (any, error) {
		time.Sleep(5 * time.Millisecond)
		return nil, nil
	})
	assert.GreaterOrEqual(t, res.Elapsed, 5*time.Millisecond)

	res = safe.Call(func() (any, error) {
		time.Sleep(5 * time.Millisecond)
		panic("late")
	})
	assert.GreaterOrEqual(t, res.Elapsed, 5*time.Millisecond)
}
