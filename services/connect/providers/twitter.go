package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/dghubble/oauth1"
	"github.com/dghubble/oauth1/twitter"

	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
	"github.com/MarcGrol/socialconnect/services/connect/oauth1client"
)

const twitterAPIBaseURL = "https://api.twitter.com"

func registerTwitter(registry *connectfactory.FactoryRegistry) {
	consumerKey := os.Getenv("TWITTER_CONSUMER_KEY")
	consumerSecret := os.Getenv("TWITTER_CONSUMER_SECRET")
	if consumerKey == "" || consumerSecret == "" {
		return
	}

	client := oauth1client.New(consumerKey, consumerSecret, twitter.AuthorizeEndpoint, connectfactory.OAuth1VersionCore10a)
	registry.Register(connectfactory.NewOAuth1ConnectionFactory("twitter", "twitter", client,
		newTwitterIdentityFetcher(consumerKey, consumerSecret, twitterAPIBaseURL)))
}

func newTwitterIdentityFetcher(consumerKey string, consumerSecret string, baseURL string) connectfactory.OAuth1IdentityFetcher {
	config := oauth1.NewConfig(consumerKey, consumerSecret)

	return func(c context.Context, accessToken connectfactory.AccessToken) (connectfactory.Identity, error) {
		httpClient := config.Client(c, oauth1.NewToken(accessToken.Value, accessToken.Secret))

		resp, err := httpClient.Get(baseURL + "/1.1/account/verify_credentials.json")
		if err != nil {
			return connectfactory.Identity{}, fmt.Errorf("error fetching twitter profile: %s", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return connectfactory.Identity{}, fmt.Errorf("error fetching twitter profile: got status %d", resp.StatusCode)
		}

		profile := struct {
			IDStr           string `json:"id_str"`
			ScreenName      string `json:"screen_name"`
			ProfileImageURL string `json:"profile_image_url_https"`
		}{}
		err = json.NewDecoder(resp.Body).Decode(&profile)
		if err != nil {
			return connectfactory.Identity{}, fmt.Errorf("error parsing twitter profile: %s", err)
		}

		return connectfactory.Identity{
			ProviderUserID: profile.IDStr,
			DisplayName:    "@" + profile.ScreenName,
			ProfileURL:     "https://twitter.com/" + profile.ScreenName,
			ImageURL:       profile.ProfileImageURL,
		}, nil
	}
}
