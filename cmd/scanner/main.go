// Copyright 2025 Poiesic Systems
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
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/checkdex"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	kb, err := checkdex.Open("./data")
	if err != nil {
		panic(err)
	}
	searcher, err := kb.NewSearcher()
	if err != nil {
		panic(err)
	}
	defer searcher.Release()

	query := "csrf"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}

	report, err := searcher.Search(context.Background(), query, "", 5)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Found %d hits in %s (%s)\n", report.Count, report.Domain, report.Source)
	for i, result := range report.Results {
		fmt.Printf("%d: %s [%s]\n", i, result[0].Value, result.Get("Severity"))
	}
}
