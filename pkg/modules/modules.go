/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modules

// Modules groups the pluggable parts of an engine.
// Engines fill nil fields with defaults: an MD5 hasher and no interceptor.
type Modules struct {
	Hasher      Hasher
	Interceptor EventInterceptor
}
