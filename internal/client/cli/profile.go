package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/vrmarket/vrmarket/internal/client/services"
)

// Setup creates the profile for the signed-in principal.
func (a *App) Setup(ctx context.Context) error {
	setup, err := a.users.CheckUserSetup(ctx)
	if err != nil {
		report(err)
		return err
	}
	if setup.Exists {
		fmt.Printf("Profile already exists: %s\n", setup.User.Username)
		return nil
	}

	username, err := GetSimpleText(a.reader, "Choose a username (3-20 chars)", os.Stdout)
	if err != nil {
		return err
	}
	bio, err := GetMultiline(a.reader, "Bio (optional)", os.Stdout)
	if err != nil {
		return err
	}

	u, err := a.users.CreateUser(ctx, services.CreateUserInput{Username: username, Bio: bio})
	if err != nil {
		report(err)
		return err
	}
	fmt.Printf("Welcome, %s!\n", u.Username)
	return nil
}

// Profile prints the signed-in user's profile with their stats.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.users.GetCurrentUser(ctx)
	if err != nil {
		report(err)
		return err
	}
	if u == nil {
		fmt.Println("No profile yet. Run 'setup' to create one.")
		return nil
	}

	profile, err := a.users.GetUserProfile(ctx, u.ID)
	if err != nil {
		report(err)
		return err
	}
	fmt.Printf("%s (%s)\n", profile.Username, profile.Principal)
	if profile.Bio != "" {
		fmt.Println(profile.Bio)
	}
	fmt.Printf("Member since: %s\n", profile.Stats.JoinedAt.Format("Jan 2, 2006"))
	fmt.Printf("Assets created: %d  sold: %d\n",
		profile.Stats.TotalAssetsCreated, profile.Stats.TotalAssetsSold)
	fmt.Printf("Earnings: %s  Average rating: %.1f\n",
		profile.Stats.TotalEarningsFormatted, profile.Stats.AverageRating)
	return nil
}
