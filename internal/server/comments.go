package server

import (
	"net/http"

	"blog/internal/access"
	"blog/internal/models"
)

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request, user *models.User) {
	viewer := viewerOf(user)
	post, err := models.GetPost(s.DB, urlID(r))
	if !authorize(s, w, r, "post.read", access.Read, viewer, post, err) {
		return
	}
	form := parseCommentForm(r)
	if err := validateForm(form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	comment := &models.Comment{PostID: post.ID, Content: form.Content}
	if !s.allow(w, r, "comment.create", access.AssignOwner(comment, viewer)) {
		return
	}
	if err := models.CreateComment(s.DB, comment); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/posts/"+itoa(post.ID), http.StatusSeeOther)
}

// commentForWrite loads the comment named in the URL and checks that the
// viewer can see its post and may change the comment itself.
func (s *Server) commentForWrite(w http.ResponseWriter, r *http.Request, op string, viewer access.Viewer) (*models.Comment, bool) {
	comment, err := models.GetComment(s.DB, urlID(r))
	if !authorize(s, w, r, "comment.read", access.Read, viewer, comment, err) {
		return nil, false
	}
	post, err := models.GetPost(s.DB, comment.PostID)
	if !authorize(s, w, r, "post.read", access.Read, viewer, post, err) {
		return nil, false
	}
	if !s.allow(w, r, op, access.Write(comment, viewer)) {
		return nil, false
	}
	return comment, true
}

func (s *Server) handleEditCommentForm(w http.ResponseWriter, r *http.Request, user *models.User) {
	comment, ok := s.commentForWrite(w, r, "comment.update", viewerOf(user))
	if !ok {
		return
	}
	s.render(w, "comment_form", map[string]any{
		"User":    user,
		"Comment": comment,
	})
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request, user *models.User) {
	comment, ok := s.commentForWrite(w, r, "comment.update", viewerOf(user))
	if !ok {
		return
	}
	form := parseCommentForm(r)
	if err := validateForm(form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	comment.Content = form.Content
	if err := models.UpdateComment(s.DB, comment); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/posts/"+itoa(comment.PostID), http.StatusSeeOther)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request, user *models.User) {
	comment, ok := s.commentForWrite(w, r, "comment.delete", viewerOf(user))
	if !ok {
		return
	}
	if err := models.DeleteComment(s.DB, comment.ID); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/posts/"+itoa(comment.PostID), http.StatusSeeOther)
}
