package entities

import "fmt"

const senderLocalPart = "packager"

// Notification is a rendered release announcement for one outdated component.
type Notification struct {
	From    string
	To      string
	Subject string
	Body    string
}

// NewNotification renders the announcement for outdated, addressed to
// recipient and sent from packager@sendingDomain.
//
// The body names up to two owning projects. It fails with ErrNoOwningProject
// when outdated has none.
func NewNotification(outdated OutdatedComponent, recipient, sendingDomain string) (Notification, error) {
	containment, err := containmentPhrase(outdated.Projects)
	if err != nil {
		return Notification{}, fmt.Errorf("%w: %s", err, outdated.Name)
	}

	return Notification{
		From:    senderLocalPart + "@" + sendingDomain,
		To:      recipient,
		Subject: fmt.Sprintf("package: %s %s is released!", outdated.Name, outdated.LatestVersion),
		Body: fmt.Sprintf(
			"%s %s, but %s has just been released.",
			containment, outdated.CurrentVersion, outdated.LatestVersion,
		),
	}, nil
}

func containmentPhrase(projects []Project) (string, error) {
	switch len(projects) {
	case 0:
		return "", ErrNoOwningProject
	case 1:
		return fmt.Sprintf("project %s contains", projects[0].Name), nil
	case 2:
		return fmt.Sprintf("projects %s and %s contain", projects[0].Name, projects[1].Name), nil
	default:
		return fmt.Sprintf("projects %s, %s and others contain", projects[0].Name, projects[1].Name), nil
	}
}
