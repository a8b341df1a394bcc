package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gsocbuddy/gsoc-buddy/internal/ai/gemini"
	"github.com/gsocbuddy/gsoc-buddy/internal/analyzer"
	"github.com/gsocbuddy/gsoc-buddy/internal/filtering"
	"github.com/gsocbuddy/gsoc-buddy/internal/github"
	"github.com/gsocbuddy/gsoc-buddy/internal/logger"
	"github.com/gsocbuddy/gsoc-buddy/internal/secrets"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	PromptInspect             = "Inspect an issue"
	PromptAnalysesToFile      = "Dump analyses to file"
	PromptAppendToExcludeFile = "Append all issues to exclude file"
	PromptQuit                = "Quit"
	PromptBack                = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptInspect, PromptAnalysesToFile, PromptAppendToExcludeFile, PromptQuit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch GitHub issues, analyze them with AI and rank them against your profile",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("non-interactive", "y", false, "print the ranked report and exit without the action prompt")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with issues to exclude. Default is unset.")

	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the gsoc-buddy", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Search == nil || config.Search.Owner == "" || config.Search.Repo == "" {
		logger.Fatal("repository is required under search.owner and search.repo")
	}

	if config.Profile == nil || config.Profile.Level == "" {
		logger.Fatal("user level is required under profile.level to score issues")
	}

	token, err := resolveToken(config)
	if err != nil {
		logger.Warn("proceeding without a github token",
			zap.Error(err),
			zap.String("hint", "set GITHUB_TOKEN_FILE environment variable or the 'token-file' key in the configuration file"),
		)
	}

	gh := github.New(ctx, logger, token)

	if config.UserAgent != "" {
		gh.UserAgent = config.UserAgent
	}

	logger.Info("starting the search",
		zap.String("owner", config.Search.Owner),
		zap.String("repo", config.Search.Repo),
	)

	issues, err := getIssues(gh, config, logger)
	if err != nil {
		logger.Fatal("getting issues", zap.Error(err))
	}

	if issues.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no issues found"))
		return
	}

	filtered, err := filtering.Run(ctx, logger, prepareFilters(config), issues)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}
	issues = filtered

	if issues.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no issues left after filters"))
		return
	}

	issueAnalyzer, err := newIssueAnalyzer(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building issue analyzer", zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file in the configuration file or the GEMINI_API_KEY environment variable"),
		)
	}

	reports := analyzeAndScore(ctx, issueAnalyzer, issues, config.Profile)

	renderReports(reports)

	if cmd.Flag("non-interactive").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, reports, issues); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, reports []*issueReport, issues *github.Issues) error {
	switch action {
	case PromptInspect:
		return inspect(reports)
	case PromptAnalysesToFile:
		filename, err := dumpReports(reports)
		if err != nil {
			return fmt.Errorf("dump analyses to file: %w", err)
		}
		logger.Info("dumping analyses to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(logger, issues)
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func resolveToken(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	return secrets.Load(secrets.Source{
		Name: "github token",
		File: tokenFile,
		Env:  "GITHUB_TOKEN",
	})
}

// getIssues returns a list of issues that match the config.
func getIssues(gh *github.Client, config *Config, logger *zap.Logger) (*github.Issues, error) {
	s := newSpinner(" Fetching issues from GitHub...")
	s.Start()
	results, err := gh.ListIssues(config.Search)
	s.Stop()

	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}

	logger.Info("getting issues", zap.Int("count", results.Len()))
	return results, nil
}

func prepareFilters(config *Config) []filtering.Filter {
	steps := []filtering.Filter{
		filtering.NewPullRequests(),
	}

	if config.Search != nil && len(config.Search.Labels) > 0 {
		steps = append(steps, filtering.NewLabels(config.Search.Labels))
	}

	if config.MaxIssueAge != "" {
		if maxAge, err := time.ParseDuration(config.MaxIssueAge); err == nil && maxAge > 0 {
			steps = append(steps, filtering.NewStale(maxAge))
		}
	}

	if excludeFile := viper.GetString("exclude-file"); excludeFile != "" {
		steps = append(steps, filtering.NewExcludeFile(excludeFile))
	}

	return steps
}

func newIssueAnalyzer(ctx context.Context, cfg *AIConfig, base *zap.Logger) (*analyzer.IssueAnalyzer, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required under the ai section")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	genLogger := logger.WithCommonFields(base, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxLogLength, genLogger)
	if err != nil {
		return nil, err
	}

	// A malformed pace is treated as no pacing.
	pace, _ := time.ParseDuration(cfg.Gemini.Pace)

	return analyzer.New(generator, genLogger, cfg.Gemini.MaxLogLength, pace)
}

// issueReport pairs an issue with its analysis and, when the analysis
// succeeded, the match against the user profile.
type issueReport struct {
	Issue    *github.Issue
	Analysis *analyzer.Analysis
	Match    *analyzer.MatchReport
}

func (r *issueReport) score() int {
	if r.Match == nil {
		return -1
	}
	return r.Match.MatchPercentage
}

func analyzeAndScore(ctx context.Context, issueAnalyzer *analyzer.IssueAnalyzer, issues *github.Issues, profile *Profile) []*issueReport {
	requests := make([]analyzer.Request, 0, issues.Len())
	for _, issue := range issues.Items {
		requests = append(requests, analyzer.Request{
			Title:       issue.Title,
			Description: issue.Body,
			Labels:      issue.LabelNames(),
		})
	}

	s := newSpinner(fmt.Sprintf(" Analyzing %d issues with Gemini...", len(requests)))
	s.Start()
	results := issueAnalyzer.BatchAnalyze(ctx, requests)
	s.Stop()

	reports := make([]*issueReport, 0, len(results))
	for i, result := range results {
		report := &issueReport{Issue: issues.Items[i], Analysis: result}
		if !result.Failed() {
			report.Match = analyzer.CalculateMatchScore(result, profile.Skills, profile.Level)
		}
		reports = append(reports, report)
	}

	// Best matches first, failed analyses last.
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].score() > reports[j].score()
	})

	return reports
}

func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = suffix
	return s
}

func renderReports(reports []*issueReport) {
	fmt.Println()
	color.New(color.FgCyan, color.Bold).Printf("Found %d issues, ranked by match:\n\n", len(reports))

	for _, report := range reports {
		renderReport(report)
		fmt.Println()
	}
}

func renderReport(r *issueReport) {
	color.New(color.Bold).Printf("#%d %s\n", r.Issue.Number, r.Issue.Title)
	fmt.Printf("  %s\n", r.Issue.HTMLURL)

	if r.Analysis.Failed() {
		color.New(color.FgRed).Printf("  analysis failed (%s): %s\n", r.Analysis.Err.Kind, r.Analysis.Err.Message)
		if r.Analysis.Err.Hint != "" {
			fmt.Printf("  hint: %s\n", r.Analysis.Err.Hint)
		}
		return
	}

	fmt.Printf("  difficulty: %s | category: %s | priority: %s | time: %s\n",
		r.Analysis.Difficulty, r.Analysis.Category, r.Analysis.Priority, r.Analysis.EstimatedTime)

	if r.Analysis.ParseWarning != "" {
		color.New(color.FgYellow).Printf("  warning: %s\n", r.Analysis.ParseWarning)
	}

	tier := tierColor(r.Match.MatchPercentage)
	tier.Printf("  match: %d%% (skills %d%%, level %d%%)\n",
		r.Match.MatchPercentage, r.Match.SkillMatch, r.Match.LevelMatch)

	if r.Match.Explanation != "" {
		fmt.Printf("  %s\n", r.Match.Explanation)
	}

	tier.Printf("  %s\n", r.Match.Recommendation)
}

func tierColor(percentage int) *color.Color {
	switch {
	case percentage >= 80:
		return color.New(color.FgGreen)
	case percentage >= 60:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func inspect(reports []*issueReport) error {
	for {
		items := make([]string, 0, len(reports)+1)
		for _, r := range reports {
			items = append(items, fmt.Sprintf("#%d %s", r.Issue.Number, r.Issue.Title))
		}

		issuePrompt := promptui.Select{
			Label: "Choose an issue and press ENTER",
			Items: append(items, PromptBack),
		}

		idx, selected, err := issuePrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		printDetails(reports[idx])
	}
}

func printDetails(r *issueReport) {
	fmt.Println()
	renderReport(r)

	a := r.Analysis
	if a.Failed() {
		return
	}

	if len(a.Skills) > 0 {
		fmt.Printf("  skills: %s\n", strings.Join(a.Skills, ", "))
	}
	if len(a.Concepts) > 0 {
		fmt.Printf("  concepts: %s\n", strings.Join(a.Concepts, ", "))
	}
	fmt.Printf("  gsoc friendly: %s\n", a.GSOCFriendly)
	if a.Reasoning != "" {
		fmt.Printf("  reasoning: %s\n", a.Reasoning)
	}
	if a.OriginalDescription != "" {
		fmt.Printf("\n  %s\n", a.OriginalDescription)
	}
}

// reportDump is the yaml shape written by the dump action.
type reportDump struct {
	Number   int                   `yaml:"number"`
	Title    string                `yaml:"title"`
	URL      string                `yaml:"url"`
	Analysis *analyzer.Analysis    `yaml:"analysis"`
	Match    *analyzer.MatchReport `yaml:"match,omitempty"`
}

func dumpReports(reports []*issueReport) (string, error) {
	dump := make([]*reportDump, 0, len(reports))
	for _, r := range reports {
		dump = append(dump, &reportDump{
			Number:   r.Issue.Number,
			Title:    r.Issue.Title,
			URL:      r.Issue.HTMLURL,
			Analysis: r.Analysis,
			Match:    r.Match,
		})
	}

	file, err := os.CreateTemp("", fmt.Sprintf("%s-analyses-*.yaml", app))
	if err != nil {
		return "", err
	}
	defer file.Close()

	content, err := yaml.Marshal(dump)
	if err != nil {
		return "", err
	}

	if _, err := file.Write(content); err != nil {
		return "", err
	}

	return file.Name(), nil
}

func appendToExcludeFile(logger *zap.Logger, issues *github.Issues) error {
	excludeFile := viper.GetString("exclude-file")
	if excludeFile == "" {
		return errors.New("exclude file is not configured")
	}

	excluded, err := github.GetExcludedIssuesFromFile(excludeFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		excluded = &github.ExcludedIssues{}
	}

	excluded.Append(issues.ToExcluded())

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	logger.Info("appended to exclude file",
		zap.String("filename", excludeFile),
		zap.Int("count", issues.Len()),
	)

	issues.Exclude(excluded.Numbers())

	return nil
}
