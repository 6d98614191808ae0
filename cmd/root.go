/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"log"
	"os"

	"github.com/mealmax/smoketest/app"

	"github.com/spf13/cobra"
)

var (
	baseURL         string
	echoJSON        bool
	leaderboardSort string
	rateLimit       float64
	headerFile      string
	outputFile      string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smoketest",
	Short: "run the meal catalog smoketest sequence",
	Long: `Run a fixed, ordered sequence of HTTP smoketests against the meal
catalog, battle and leaderboard API. The run stops at the first failing
step and exits non-zero.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		headers, err := loadHeadersFromFile()
		if err != nil {
			log.Fatalln(err)
		}

		a := app.NewApp(
			app.Config{
				BaseURL:         baseURL,
				EchoJSON:        echoJSON,
				LeaderboardSort: leaderboardSort,
				RateLimit:       rateLimit,
				Headers:         app.Headers{Global: headers},
			},
			app.NewPathInterpolator(),
		)

		err = a.Run()
		if err == nil {
			return
		}

		if len(a.Results.Findings) == 0 {
			log.Fatalf("Error: %s\n", err)
		}

		findings, jsonErr := json.MarshalIndent(a.Results.Findings, "", "  ")
		if jsonErr != nil {
			log.Fatalf(jsonErr.Error())
		}

		if outputFile != "" {
			writeErr := os.WriteFile(outputFile, findings, 0o644)
			if writeErr != nil {
				log.Fatalln(writeErr)
			}

			log.Fatalf("Written findings to %s", outputFile)
		}

		log.Println("Findings:")
		for _, finding := range a.Results.Findings {
			log.Printf("%s: %s\nError: %s\n%s", finding.Step, finding.URL, finding.Error, finding.Diff)
		}

		log.Fatalf("Error: %s\n", err)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}

func init() {
	rootCmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:5000/api", "[optional] base URL of the API under test")
	rootCmd.Flags().BoolVar(&echoJSON, "echo-json", false, "[optional] pretty-print the JSON response of every successful step")
	rootCmd.Flags().StringVar(&leaderboardSort, "leaderboard-sort", "wins", "[optional] leaderboard sort key: wins or win_pct")
	rootCmd.Flags().Float64Var(&rateLimit, "rate-limit", 25, "[optional] rate limit of requests / second")
	rootCmd.Flags().StringVar(&headerFile, "header-file", "", "[optional] JSON object (string: string) with headers applied to every request")
	rootCmd.Flags().StringVar(&outputFile, "output-file", "", "[optional] path to write the findings to on failure (default: \"\" -> writing to stdout)")
}

func loadHeadersFromFile() (map[string]string, error) {
	if headerFile == "" {
		return map[string]string{}, nil
	}

	content, err := os.ReadFile(headerFile)
	if err != nil {
		return nil, err
	}

	var headers map[string]string
	err = json.Unmarshal(content, &headers)
	if err != nil {
		return nil, err
	}

	return headers, nil
}
