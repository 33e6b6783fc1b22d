/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oracle

import (
	"go.uber.org/zap"
)

// Logger is the part of *zap.Logger an engine writes to. Protocol steps are logged at
// debug level and values that cannot be fingerprinted, or failing interceptors, at
// warn level. Any *zap.Logger can be passed as is.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

var nopLogger Logger = zap.NewNop()
