package connectevents

const (
	TopicName                 = "connect"
	connectStartedName        = TopicName + ".flow.started"
	connectionEstablishedName = TopicName + ".connection.established"
	connectionRemovedName     = TopicName + ".connection.removed"
)

type ConnectStarted struct {
	ProviderID string
	SessionUID string
}

func (e ConnectStarted) GetEventTypeName() string {
	return connectStartedName
}

func (e ConnectStarted) GetAggregateName() string {
	return e.ProviderID
}

type ConnectionEstablished struct {
	ProviderID     string
	ProviderUserID string
	SessionUID     string
}

func (e ConnectionEstablished) GetEventTypeName() string {
	return connectionEstablishedName
}

func (e ConnectionEstablished) GetAggregateName() string {
	return e.ProviderID
}

type ConnectionRemoved struct {
	ProviderID     string
	ProviderUserID string
	SessionUID     string
}

func (e ConnectionRemoved) GetEventTypeName() string {
	return connectionRemovedName
}

func (e ConnectionRemoved) GetAggregateName() string {
	return e.ProviderID
}
