package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var autoMode bool

var rootCmd = &cobra.Command{
	Use:   "kindlebundle",
	Short: "Bundle read-later articles into Kindle deliveries",
	Long:  `A personal read-later pipeline: select inbox articles under a word budget, package them into an epub, mail it to a Kindle, and triage what came back.`,
}

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Select unsent articles and send them as an epub",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := LoadSettings()
		if err != nil {
			return err
		}
		return runBundle(settings)
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Triage articles that have been sent to the Kindle",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := LoadSettings()
		if err != nil {
			return err
		}

		fmt.Println("Article Processor")
		fmt.Println("----------------------------------------")
		return RunTriage(bufio.NewScanner(os.Stdin), os.Stdout, settings)
	},
}

var importCmd = &cobra.Command{
	Use:   "import [url]",
	Short: "Clip a web page into the inbox",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := LoadSettings()
		if err != nil {
			return err
		}

		path, err := NewImporter(settings).ImportURL(args[0])
		if err != nil {
			return err
		}
		log.Printf("Imported: %s", path)
		return nil
	},
}

func runBundle(settings *Settings) error {
	target := Target{Words: settings.TargetWords}
	fmt.Printf("Target word count: %d words\n\n", target.Words)

	inbox := NewInbox(settings.InboxDir)
	candidates, err := inbox.Candidates(true)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		fmt.Printf("No unsent articles found in %s.\n", settings.InboxDir)
		fmt.Println("All articles have already been sent to Kindle.")
		return nil
	}

	fmt.Printf("Found %d unsent article(s) available for selection.\n\n", len(candidates))

	scanner := bufio.NewScanner(os.Stdin)

	useAuto := autoMode
	if !autoMode {
		useAuto, err = promptMode(scanner)
		if err != nil {
			return err
		}
	}

	var selected []Candidate
	if useAuto {
		newest, err := promptDirection(scanner)
		if err != nil {
			return err
		}
		selected = autoBundleSelection(candidates, target, newest)
	} else {
		selected, err = SelectInteractive(scanner, os.Stdout, candidates, target)
		if errors.Is(err, ErrSelectionCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	fmt.Println("\nCreating epub...")
	epubPath, err := NewBundler(settings).Create(selected)
	if err != nil {
		return err
	}
	fmt.Printf("Created: %s\n", epubPath)

	fmt.Println("\nSending to Kindle...")
	subject := fmt.Sprintf("Articles Bundle - %s", time.Now().Format(displayDateFormat))
	if err := NewSender(settings).Send(epubPath, subject); err != nil {
		return fmt.Errorf("sending bundle: %w", err)
	}
	fmt.Println("Sent successfully!")

	fmt.Printf("\nMarking articles as %s...\n", sentKey)
	for _, c := range selected {
		if err := MarkField(c.Path, sentKey, sentValue); err != nil {
			return fmt.Errorf("marking %s: %w", c.Path, err)
		}
	}
	fmt.Printf("Updated %d article(s).\n", len(selected))
	return nil
}

// autoBundleSelection runs the unattended strategy and narrates each pick.
func autoBundleSelection(candidates []Candidate, target Target, newest bool) []Candidate {
	order := "oldest"
	if newest {
		order = "newest"
		candidates = Reversed(candidates)
	}
	fmt.Printf("\nAutomatically selecting %s articles to reach %d words...\n\n", order, target.Words)

	selected, total := AutoSelect(candidates, target)
	for _, c := range selected {
		fmt.Printf("  Added: %s (%d words)\n", truncateTitle(c.Meta.Title, 60), c.Meta.WordCount)
	}

	fmt.Printf("\nAutomatically selected: %d articles, %d words\n", len(selected), total)
	fmt.Printf("Progress: %.1f%% of target\n", target.Percent(total))
	return selected
}

func promptMode(scanner *bufio.Scanner) (useAuto bool, err error) {
	for {
		answer, ok := prompt(scanner, os.Stdout, "Selection mode (a=automatic, i=interactive): ")
		if !ok {
			return false, errors.New("input closed")
		}
		switch answer {
		case "a", "auto", "automatic":
			return true, nil
		case "i", "interactive", "manual", "":
			return false, nil
		default:
			fmt.Println("Please enter 'a' for automatic or 'i' for interactive.")
		}
	}
}

func promptDirection(scanner *bufio.Scanner) (newest bool, err error) {
	for {
		answer, ok := prompt(scanner, os.Stdout, "Select (o=oldest articles first, n=newest articles first): ")
		if !ok {
			return false, errors.New("input closed")
		}
		switch answer {
		case "o", "oldest", "old", "":
			return false, nil
		case "n", "newest", "new":
			return true, nil
		default:
			fmt.Println("Please enter 'o' for oldest or 'n' for newest.")
		}
	}
}

func init() {
	bundleCmd.Flags().BoolVar(&autoMode, "auto", false, "Automatically select oldest or newest articles to reach the target word count")
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	// Optional .env for the SMTP credential; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
