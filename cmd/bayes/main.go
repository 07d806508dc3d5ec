/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Akaylee Bayes engine. Provides
comprehensive command-line options, configuration management, and beautiful user
interface for building, training, and querying discrete Bayesian networks.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/akaylee-bayes/cmd/bayes/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	jsonLogs   bool

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64
	logCompress bool

	// Model configuration
	ngramSize   int
	numericBins int

	// Inference configuration
	burnIn  int
	samples int
	seed    int64
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "akaylee-bayes",
		Short: "Akaylee Bayes - Discrete Bayesian network engine with MCMC inference",
		Long: `Akaylee Bayes is a discrete Bayesian network engine supporting parameter
learning from observed data and approximate posterior inference. Networks are
directed acyclic graphs of discrete, string, and numeric variables; string data
is decomposed into n-gram covariables, numeric data is dynamically discretized,
and queries are answered by Gibbs-style MCMC sampling over the Markov blanket.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")

	// Add logging-specific flags
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")
	rootCmd.PersistentFlags().BoolVar(&logCompress, "log-compress", false, "Compress rotated log files")

	// Add model flags
	rootCmd.PersistentFlags().IntVar(&ngramSize, "ngram-size", 2, "N-gram length for string variables")
	rootCmd.PersistentFlags().IntVar(&numericBins, "bins", 2, "Discretization bin count for numeric variables")

	// Add inference flags
	rootCmd.PersistentFlags().IntVar(&burnIn, "burn-in", 1000, "MCMC burn-in sweeps discarded before sampling")
	rootCmd.PersistentFlags().IntVar(&samples, "samples", 10000, "MCMC sweeps tallied into the posterior")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed (0 = seed from clock)")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))
	viper.BindPFlag("log_compress", rootCmd.PersistentFlags().Lookup("log-compress"))
	viper.BindPFlag("ngram_size", rootCmd.PersistentFlags().Lookup("ngram-size"))
	viper.BindPFlag("bins", rootCmd.PersistentFlags().Lookup("bins"))
	viper.BindPFlag("burn_in", rootCmd.PersistentFlags().Lookup("burn-in"))
	viper.BindPFlag("samples", rootCmd.PersistentFlags().Lookup("samples"))
	viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))

	// Add train command
	trainCmd := &cobra.Command{
		Use:   "train",
		Short: "Build and train a network from observed examples",
		Long: `Build a network from variable and edge declarations (or load an existing
XMLBIF document), train it on a batch of fully-observed examples, and write the
resulting network back out as XMLBIF. Training is cumulative across runs.`,
		RunE: commands.RunTrain,
	}

	trainCmd.Flags().String("network", "", "Existing XMLBIF network to continue from")
	trainCmd.Flags().String("output", "./network.xml", "Output XMLBIF path")
	trainCmd.Flags().String("data", "", "Training data file (CSV with header row, or JSON array) (required)")
	trainCmd.Flags().StringSlice("discrete", []string{}, "Discrete variable declarations (Name=state1,state2)")
	trainCmd.Flags().StringSlice("string", []string{}, "String variable declarations (Name or Name:ngramSize)")
	trainCmd.Flags().StringSlice("numeric", []string{}, "Numeric variable declarations (Name or Name:bins)")
	trainCmd.Flags().StringSlice("edge", []string{}, "Edge declarations (Parent:Child)")
	trainCmd.MarkFlagRequired("data")

	viper.BindPFlag("train.network", trainCmd.Flags().Lookup("network"))
	viper.BindPFlag("train.output", trainCmd.Flags().Lookup("output"))
	viper.BindPFlag("train.data", trainCmd.Flags().Lookup("data"))
	viper.BindPFlag("train.discrete", trainCmd.Flags().Lookup("discrete"))
	viper.BindPFlag("train.string", trainCmd.Flags().Lookup("string"))
	viper.BindPFlag("train.numeric", trainCmd.Flags().Lookup("numeric"))
	viper.BindPFlag("train.edge", trainCmd.Flags().Lookup("edge"))

	// Add query command
	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Estimate the posterior of a variable given evidence",
		Long: `Load a network from an XMLBIF document, pin the given evidence, and run the
Gibbs sampler to estimate the posterior distribution of the target variable.`,
		RunE: commands.RunQuery,
	}

	queryCmd.Flags().String("network", "", "XMLBIF network to query (required)")
	queryCmd.Flags().String("variable", "", "Variable to query (required)")
	queryCmd.Flags().StringSlice("evidence", []string{}, "Evidence assignments (Variable=state)")
	queryCmd.MarkFlagRequired("network")
	queryCmd.MarkFlagRequired("variable")

	viper.BindPFlag("query.network", queryCmd.Flags().Lookup("network"))
	viper.BindPFlag("query.variable", queryCmd.Flags().Lookup("variable"))
	viper.BindPFlag("query.evidence", queryCmd.Flags().Lookup("evidence"))

	// Add inspect command
	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the structure and tables of a network",
		RunE:  commands.RunInspect,
	}

	inspectCmd.Flags().String("network", "", "XMLBIF network to inspect (required)")
	inspectCmd.Flags().Bool("tables", false, "Print full CPT contents")
	inspectCmd.MarkFlagRequired("network")

	viper.BindPFlag("inspect.network", inspectCmd.Flags().Lookup("network"))
	viper.BindPFlag("inspect.tables", inspectCmd.Flags().Lookup("tables"))

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
