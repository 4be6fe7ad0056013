// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package autoload loads .env from the working directory when imported.
//
//	import _ "github.com/z5labs/settings/dotenv/autoload"
//
// Variables already present in the environment are left untouched.
package autoload

import (
	"context"
	"fmt"
	"os"

	"github.com/z5labs/settings/dotenv"
)

func init() {
	err := dotenv.Load(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
