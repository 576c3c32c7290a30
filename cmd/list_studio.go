package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"studio-site/pkg/services"
)

// newListStudioCmd creates a new command for listing the studio page content
func newListStudioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-studio",
		Short: "List team members, show appearances and press",
		Long:  `List the static content of the studio page: team members, show-house appearances and press mentions.`,
		Run: func(cmd *cobra.Command, args []string) {
			listStudio()
		},
	}
}

// listStudio displays the studio page content
func listStudio() {
	studio := services.Studio()

	fmt.Println("Team:")
	fmt.Println("=====")
	for _, member := range studio.Team {
		fmt.Printf("  - %s (%s)\n", member.Name, member.Role)
	}
	fmt.Println()

	fmt.Println("Shows:")
	fmt.Println("======")
	for _, show := range studio.Shows {
		fmt.Printf("  - %s\n", show.Name)
	}
	fmt.Println()

	fmt.Println("Press:")
	fmt.Println("======")
	for _, item := range studio.Press {
		fmt.Printf("  - %s: %s\n", item.Outlet, item.Title)
	}
}
