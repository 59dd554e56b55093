package server

import (
	"net/http"

	"go.uber.org/zap"

	"blog/internal/access"
	"blog/internal/models"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	viewer := viewerOf(user)

	sort := models.ParsePostSort(r.URL.Query().Get("sort"))
	total, err := models.CountPosts(s.DB, viewer.UserID())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	p := newPager(r, s.cfg.PageSize, total)

	posts, err := models.ListPosts(s.DB, models.ListOptions{
		ViewerID: viewer.UserID(),
		Sort:     sort,
		Limit:    p.size,
		Offset:   p.offset(),
	})
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	data := map[string]any{
		"Posts": access.FilterListing(posts, viewer),
		"User":  user,
		"Sort":  string(sort),
	}
	p.fill(data)
	s.render(w, "index", data)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	viewer := viewerOf(user)

	post, err := models.GetPost(s.DB, urlID(r))
	if !authorize(s, w, r, "post.read", access.Read, viewer, post, err) {
		return
	}
	if err := models.IncrementPostViews(s.DB, post.ID); err != nil {
		s.logger.Warn("increment views", zap.Int64("postID", post.ID), zap.Error(err))
	} else {
		post.Views++
	}
	comments, err := models.ListComments(s.DB, post.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, "post", map[string]any{
		"Post":     post,
		"Comments": comments,
		"User":     user,
		"ViewerID": viewer.UserID(),
		"CanEdit":  access.CanModify(post, viewer),
	})
}

func (s *Server) handleNewPostForm(w http.ResponseWriter, r *http.Request, user *models.User) {
	s.render(w, "post_form", map[string]any{
		"User":    user,
		"Heading": "New post",
		"Action":  "/posts/new",
	})
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request, user *models.User) {
	form := parsePostForm(r)
	if err := validateForm(form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	post := &models.Post{
		Title:      form.Title,
		Content:    form.Content,
		Visibility: models.Visibility(form.Visibility),
	}
	if !s.allow(w, r, "post.create", access.AssignOwner(post, viewerOf(user))) {
		return
	}
	if err := models.CreatePost(s.DB, post); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.logger.Info("post created", zap.Int64("postID", post.ID), zap.Int64("userID", post.UserID))
	http.Redirect(w, r, "/posts/"+itoa(post.ID), http.StatusSeeOther)
}

func (s *Server) handleEditPostForm(w http.ResponseWriter, r *http.Request, user *models.User) {
	post, err := models.GetPost(s.DB, urlID(r))
	if !authorize(s, w, r, "post.update", access.Write, viewerOf(user), post, err) {
		return
	}
	s.render(w, "post_form", map[string]any{
		"User":    user,
		"Post":    post,
		"Heading": "Edit post",
		"Action":  "/posts/" + itoa(post.ID) + "/edit",
	})
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request, user *models.User) {
	post, err := models.GetPost(s.DB, urlID(r))
	if !authorize(s, w, r, "post.update", access.Write, viewerOf(user), post, err) {
		return
	}
	form := parsePostForm(r)
	if err := validateForm(form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	post.Title = form.Title
	post.Content = form.Content
	post.Visibility = models.Visibility(form.Visibility)
	if err := models.UpdatePost(s.DB, post); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/posts/"+itoa(post.ID), http.StatusSeeOther)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, user *models.User) {
	post, err := models.GetPost(s.DB, urlID(r))
	if !authorize(s, w, r, "post.delete", access.Write, viewerOf(user), post, err) {
		return
	}
	if err := models.DeletePost(s.DB, post.ID); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.logger.Info("post deleted", zap.Int64("postID", post.ID), zap.Int64("userID", user.ID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
