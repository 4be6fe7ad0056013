// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/z5labs/settings/secretstore"
)

func ExampleReturnEnvVar() {
	os.Setenv("EXAMPLE_DATABASE_URL", "postgres://x")
	defer os.Unsetenv("EXAMPLE_DATABASE_URL")

	ctx := context.Background()
	dbURL, err := ReturnEnvVar[string](ctx, "EXAMPLE_DATABASE_URL")
	if err != nil {
		fmt.Println(err)
		return
	}

	v, err := Get(ctx, dbURL)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(v)
	// Output: postgres://x
}

func ExampleSetEnvVarLocally() {
	ctx := context.Background()
	reg := NewRegistry()

	err := SetEnvVarLocally(ctx, reg, "EXAMPLE_PORT",
		Conversion(strconv.Atoi),
		Validator(func(n int) bool { return n > 0 && n < 65536 }),
		Default[int]("8080"),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	port, err := Resolve[int](ctx, reg, "EXAMPLE_PORT")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(port)
	// Output: 8080
}

func ExampleReturnSecretVar() {
	ctx := context.Background()

	var store secretstore.Memory
	store.Set(ctx, "Passwords", "example", "old_secret")

	apiKey, err := ReturnSecretVar(ctx, "Passwords", "example", SecretStore[string](&store))
	if err != nil {
		fmt.Println(err)
		return
	}

	before, _ := Format(ctx, apiKey)
	store.Set(ctx, "Passwords", "example", "new_secret")
	after, _ := Format(ctx, apiKey)

	fmt.Println(before)
	fmt.Println(after)
	// Output:
	// old_secret
	// new_secret
}
