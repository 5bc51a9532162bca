// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	ErrListening      = errors.New("error binding listener")
	ErrServing        = errors.New("http worker stopped serving")
	ErrShuttingDown   = errors.New("http worker did not shut down cleanly")
	ErrBuildingRouter = errors.New("error building router")
)
