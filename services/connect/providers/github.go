package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
	"github.com/MarcGrol/socialconnect/services/connect/oauth2client"
)

const githubAPIBaseURL = "https://api.github.com"

func registerGithub(registry *connectfactory.FactoryRegistry) {
	clientID := os.Getenv("GITHUB_CLIENT_ID")
	clientSecret := os.Getenv("GITHUB_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return
	}

	client := oauth2client.New(clientID, clientSecret, github.Endpoint, []string{"user:email"})
	registry.Register(connectfactory.NewOAuth2ConnectionFactory("github", "github", client,
		newGithubIdentityFetcher(githubAPIBaseURL)))
}

func newGithubIdentityFetcher(baseURL string) connectfactory.OAuth2IdentityFetcher {
	return func(c context.Context, accessToken string) (connectfactory.Identity, error) {
		httpClient := oauth2.NewClient(c, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

		resp, err := httpClient.Get(baseURL + "/user")
		if err != nil {
			return connectfactory.Identity{}, fmt.Errorf("error fetching github profile: %s", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return connectfactory.Identity{}, fmt.Errorf("error fetching github profile: got status %d", resp.StatusCode)
		}

		profile := struct {
			Login     string `json:"login"`
			Name      string `json:"name"`
			HTMLURL   string `json:"html_url"`
			AvatarURL string `json:"avatar_url"`
		}{}
		err = json.NewDecoder(resp.Body).Decode(&profile)
		if err != nil {
			return connectfactory.Identity{}, fmt.Errorf("error parsing github profile: %s", err)
		}

		displayName := profile.Name
		if displayName == "" {
			displayName = profile.Login
		}

		return connectfactory.Identity{
			ProviderUserID: profile.Login,
			DisplayName:    displayName,
			ProfileURL:     profile.HTMLURL,
			ImageURL:       profile.AvatarURL,
		}, nil
	}
}
