package rbac

// Operation names.
const (
	AuthMe     = "auth.me"
	AuthLogout = "auth.logout"

	UsersGetAll  = "users.getAll"
	UsersGetByID = "users.getById"

	PatientsGetMyProfile = "patients.getMyProfile"
	PatientsGetAll       = "patients.getAll"
	PatientsGetByUserID  = "patients.getByUserId"

	AttendantsGetAll       = "attendants.getAll"
	AttendantsGetMyProfile = "attendants.getMyProfile"
	AttendantsUpdateStatus = "attendants.updateStatus"

	ChannelsGetAll  = "channels.getAll"
	ChannelsGetByID = "channels.getById"
	ChannelsCreate  = "channels.create"

	ConversationsGetAll         = "conversations.getAll"
	ConversationsGetOpen        = "conversations.getOpen"
	ConversationsGetByID        = "conversations.getById"
	ConversationsGetByPatient   = "conversations.getByPatient"
	ConversationsGetByAttendant = "conversations.getByAttendant"
	ConversationsCreate         = "conversations.create"
	ConversationsUpdateStatus   = "conversations.updateStatus"
	ConversationsAssign         = "conversations.assign"

	MessagesGetByConversation = "messages.getByConversation"
	MessagesSend              = "messages.send"
	MessagesMarkAsRead        = "messages.markAsRead"
	MessagesGetUnreadCount    = "messages.getUnreadCount"

	AttachmentsUpload = "attachments.upload"

	QuickRepliesGetAll        = "quickReplies.getAll"
	QuickRepliesGetByCategory = "quickReplies.getByCategory"
	QuickRepliesCreate        = "quickReplies.create"

	AppointmentsGetByPatient = "appointments.getByPatient"
	AppointmentsGetUpcoming  = "appointments.getUpcoming"
	AppointmentsCreate       = "appointments.create"
	AppointmentsUpdateStatus = "appointments.updateStatus"

	MetricsGetAttendantMetrics     = "metrics.getAttendantMetrics"
	MetricsGetAllMetrics           = "metrics.getAllMetrics"
	MetricsGetDashboardStats       = "metrics.getDashboardStats"
	MetricsGetAttendantPerformance = "metrics.getAttendantPerformance"

	NotesGetByConversation = "notes.getByConversation"
	NotesCreate            = "notes.create"
)

// Permissions is the minimum tier per operation.
var Permissions = map[string]Tier{
	AuthMe:     TierPublic,
	AuthLogout: TierAuthenticated,

	UsersGetAll:  TierManager,
	UsersGetByID: TierAuthenticated,

	PatientsGetMyProfile: TierAuthenticated,
	PatientsGetAll:       TierAttendant,
	PatientsGetByUserID:  TierAttendant,

	AttendantsGetAll:       TierManager,
	AttendantsGetMyProfile: TierAttendant,
	AttendantsUpdateStatus: TierAttendant,

	ChannelsGetAll:  TierAttendant,
	ChannelsGetByID: TierAttendant,
	ChannelsCreate:  TierManager,

	ConversationsGetAll:         TierAttendant,
	ConversationsGetOpen:        TierAttendant,
	ConversationsGetByID:        TierAuthenticated,
	ConversationsGetByPatient:   TierAuthenticated,
	ConversationsGetByAttendant: TierAttendant,
	ConversationsCreate:         TierAuthenticated,
	ConversationsUpdateStatus:   TierAttendant,
	ConversationsAssign:         TierManager,

	MessagesGetByConversation: TierAuthenticated,
	MessagesSend:              TierAuthenticated,
	MessagesMarkAsRead:        TierAuthenticated,
	MessagesGetUnreadCount:    TierAuthenticated,

	AttachmentsUpload: TierAuthenticated,

	QuickRepliesGetAll:        TierAttendant,
	QuickRepliesGetByCategory: TierAttendant,
	QuickRepliesCreate:        TierManager,

	AppointmentsGetByPatient: TierAuthenticated,
	AppointmentsGetUpcoming:  TierAttendant,
	AppointmentsCreate:       TierAttendant,
	AppointmentsUpdateStatus: TierAttendant,

	MetricsGetAttendantMetrics:     TierManager,
	MetricsGetAllMetrics:           TierManager,
	MetricsGetDashboardStats:       TierManager,
	MetricsGetAttendantPerformance: TierManager,

	NotesGetByConversation: TierAttendant,
	NotesCreate:            TierAttendant,
}
