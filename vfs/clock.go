// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package vfs

import "time"

func nowFunc() int64 { return time.Now().UnixNano() }
