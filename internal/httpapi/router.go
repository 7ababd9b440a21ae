package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/clinic-inbox/internal/clinic"
	"github.com/suPer8Hu/clinic-inbox/internal/common"
	"github.com/suPer8Hu/clinic-inbox/internal/config"
	"github.com/suPer8Hu/clinic-inbox/internal/httpapi/handlers"
	"github.com/suPer8Hu/clinic-inbox/internal/httpapi/middleware"
	"github.com/suPer8Hu/clinic-inbox/internal/rbac"
)

// Deps are the optional collaborators of the router. Nil fields disable the
// feature that needs them.
type Deps struct {
	Denylist middleware.Denylist
	Revoker  handlers.Revoker
	Uploader handlers.Uploader
}

func NewRouter(svc *clinic.Service, cfg config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, common.CodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, common.CodeMethodNotAllowed, "method not allowed")
	})

	r.Use(middleware.RequestID())
	r.Use(middleware.Authenticate(cfg.JWTSecret, svc.Repo(), deps.Denylist))

	h := handlers.NewHandler(svc, cfg, deps.Revoker, deps.Uploader)
	on := middleware.Require

	r.GET("/ping", h.Ping)

	// auth
	r.GET("/auth/me", on(rbac.AuthMe), h.Me)
	r.POST("/auth/logout", on(rbac.AuthLogout), h.Logout)

	// users
	r.GET("/users", on(rbac.UsersGetAll), h.ListUsers)
	r.GET("/users/:id", on(rbac.UsersGetByID), h.GetUserByID)

	// patients
	r.GET("/patients/me", on(rbac.PatientsGetMyProfile), h.MyPatientProfile)
	r.GET("/patients", on(rbac.PatientsGetAll), h.ListPatients)
	r.GET("/patients/by-user/:userId", on(rbac.PatientsGetByUserID), h.GetPatientByUserID)

	// attendants
	r.GET("/attendants", on(rbac.AttendantsGetAll), h.ListAttendants)
	r.GET("/attendants/me", on(rbac.AttendantsGetMyProfile), h.MyAttendantProfile)
	r.PATCH("/attendants/:id/status", on(rbac.AttendantsUpdateStatus), h.UpdateAttendantStatus)

	// channels
	r.GET("/channels", on(rbac.ChannelsGetAll), h.ListChannels)
	r.GET("/channels/:id", on(rbac.ChannelsGetByID), h.GetChannelByID)
	r.POST("/channels", on(rbac.ChannelsCreate), h.CreateChannel)

	// conversations
	r.GET("/conversations", on(rbac.ConversationsGetAll), h.ListConversations)
	r.GET("/conversations/open", on(rbac.ConversationsGetOpen), h.ListOpenConversations)
	r.GET("/conversations/by-patient/:patientId", on(rbac.ConversationsGetByPatient), h.ListConversationsByPatient)
	r.GET("/conversations/by-attendant/:attendantId", on(rbac.ConversationsGetByAttendant), h.ListConversationsByAttendant)
	r.GET("/conversations/:id", on(rbac.ConversationsGetByID), h.GetConversationByID)
	r.POST("/conversations", on(rbac.ConversationsCreate), h.CreateConversation)
	r.PATCH("/conversations/:id/status", on(rbac.ConversationsUpdateStatus), h.UpdateConversationStatus)
	r.PATCH("/conversations/:id/assign", on(rbac.ConversationsAssign), h.AssignConversation)

	// messages
	r.GET("/conversations/:id/messages", on(rbac.MessagesGetByConversation), h.ListMessages)
	r.POST("/conversations/:id/messages/read", on(rbac.MessagesMarkAsRead), h.MarkMessagesAsRead)
	r.GET("/conversations/:id/messages/unread-count", on(rbac.MessagesGetUnreadCount), h.UnreadCount)
	r.POST("/messages", on(rbac.MessagesSend), h.SendMessage)

	// notes
	r.GET("/conversations/:id/notes", on(rbac.NotesGetByConversation), h.ListNotes)
	r.POST("/conversations/:id/notes", on(rbac.NotesCreate), h.CreateNote)

	r.POST("/attachments", on(rbac.AttachmentsUpload), h.UploadAttachment)

	// quick replies
	r.GET("/quick-replies", on(rbac.QuickRepliesGetAll), h.ListQuickReplies)
	r.GET("/quick-replies/category/:category", on(rbac.QuickRepliesGetByCategory), h.ListQuickRepliesByCategory)
	r.POST("/quick-replies", on(rbac.QuickRepliesCreate), h.CreateQuickReply)

	// appointments
	r.GET("/appointments/by-patient/:patientId", on(rbac.AppointmentsGetByPatient), h.ListAppointmentsByPatient)
	r.GET("/appointments/upcoming", on(rbac.AppointmentsGetUpcoming), h.ListUpcomingAppointments)
	r.POST("/appointments", on(rbac.AppointmentsCreate), h.CreateAppointment)
	r.PATCH("/appointments/:id/status", on(rbac.AppointmentsUpdateStatus), h.UpdateAppointmentStatus)

	// metrics
	r.GET("/metrics", on(rbac.MetricsGetAllMetrics), h.AllMetrics)
	r.GET("/metrics/dashboard", on(rbac.MetricsGetDashboardStats), h.DashboardStats)
	r.GET("/metrics/performance", on(rbac.MetricsGetAttendantPerformance), h.AttendantPerformance)
	r.GET("/metrics/attendants/:attendantId", on(rbac.MetricsGetAttendantMetrics), h.AttendantMetrics)

	return r
}
