package connect

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/socialconnect/lib/mycontext"
	"github.com/MarcGrol/socialconnect/lib/myerrors"
	"github.com/MarcGrol/socialconnect/lib/myhttp"
	"github.com/MarcGrol/socialconnect/lib/mylog"
	"github.com/MarcGrol/socialconnect/lib/mypublisher"
	"github.com/MarcGrol/socialconnect/lib/mysession"
	"github.com/MarcGrol/socialconnect/lib/mytime"
	"github.com/MarcGrol/socialconnect/lib/myuuid"
	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
	"github.com/MarcGrol/socialconnect/services/connect/connections"
)

const sessionCookieName = "connect_session"

type webService struct {
	service *service
	logger  mylog.Logger
}

func NewService(locator connectfactory.ConnectionFactoryLocator, repo connections.Repository, sessionStore mysession.SessionStore, interceptors *InterceptorRegistry, nower mytime.Nower, uuider myuuid.UUIDer, pub mypublisher.Publisher) *webService {
	return &webService{
		service: newService(locator, repo, sessionStore, interceptors, nower, uuider, pub),
		logger:  mylog.New("connect"),
	}
}

// RegisterCustomStrategy installs the authorization-URL builder for a
// provider whose factory is neither OAuth1 nor OAuth2.
func (s *webService) RegisterCustomStrategy(providerID string, builder CustomAuthURLBuilder) {
	s.service.registerCustomStrategy(providerID, builder)
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	// callback routes must come before the plain status route
	router.HandleFunc("/connect/{providerID}", s.oauth1CallbackPage()).Methods("GET").Queries("oauth_token", "{token}")
	router.HandleFunc("/connect/{providerID}", s.oauth2CallbackPage()).Methods("GET").Queries("code", "{code}")
	router.HandleFunc("/connect/{providerID}", s.connectionStatusPage()).Methods("GET")
	router.HandleFunc("/connect/{providerID}", s.startConnectPage()).Methods("POST")
	router.HandleFunc("/connect/{providerID}", s.removeConnectionsPage()).Methods("DELETE")
	router.HandleFunc("/connect/{providerID}/{providerUserID}", s.removeConnectionPage()).Methods("DELETE")

	err := s.service.CreateTopics(context.Background())
	if err != nil {
		return err
	}

	return nil
}

//go:embed templates
var templateFolder embed.FS

var (
	notConnectedPageTemplate *template.Template
	connectedPageTemplate    *template.Template
)

func init() {
	notConnectedPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/notconnected.html"))
	connectedPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/connected.html"))
}

var formDecoder = form.NewDecoder()

func (s *webService) connectionStatusPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		providerID := mux.Vars(r)["providerID"]
		sessionUID := s.obtainSessionUID(w, r)

		page, err := s.service.connectionStatus(c, sessionUID, providerID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		pageTemplate := notConnectedPageTemplate
		if len(page.Connections) > 0 {
			pageTemplate = connectedPageTemplate
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = pageTemplate.Execute(w, page)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s *webService) startConnectPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		providerID := mux.Vars(r)["providerID"]
		sessionUID := s.obtainSessionUID(w, r)

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		connectRequest := ConnectRequest{}
		err = formDecoder.Decode(&connectRequest, r.Form)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		authorizeURL, err := s.service.startConnect(c, sessionUID, providerID, connectRequest.Scope, r.Form, myhttp.HostnameWithScheme(r))
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		http.Redirect(w, r, authorizeURL, http.StatusFound)
	}
}

func (s *webService) oauth1CallbackPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		providerID := mux.Vars(r)["providerID"]
		sessionUID := s.obtainSessionUID(w, r)
		verifier := r.URL.Query().Get("oauth_verifier")

		statusPath, err := s.service.completeOAuth1Connect(c, sessionUID, providerID, verifier, r.URL.Query())
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		http.Redirect(w, r, statusPath, http.StatusFound)
	}
}

func (s *webService) oauth2CallbackPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		providerID := mux.Vars(r)["providerID"]
		sessionUID := s.obtainSessionUID(w, r)
		code := r.URL.Query().Get("code")

		statusPath, err := s.service.completeOAuth2Connect(c, sessionUID, providerID, code, r.URL.Query(), myhttp.HostnameWithScheme(r))
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		http.Redirect(w, r, statusPath, http.StatusFound)
	}
}

func (s *webService) removeConnectionsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		providerID := mux.Vars(r)["providerID"]
		sessionUID := s.obtainSessionUID(w, r)

		statusPath, err := s.service.removeConnections(c, sessionUID, providerID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		http.Redirect(w, r, statusPath, http.StatusFound)
	}
}

func (s *webService) removeConnectionPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		providerID := mux.Vars(r)["providerID"]
		providerUserID := mux.Vars(r)["providerUserID"]
		sessionUID := s.obtainSessionUID(w, r)

		statusPath, err := s.service.removeConnection(c, sessionUID, providerID, providerUserID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		http.Redirect(w, r, statusPath, http.StatusFound)
	}
}

func (s *webService) obtainSessionUID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionUID := s.service.uuider.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionUID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sessionUID
}
