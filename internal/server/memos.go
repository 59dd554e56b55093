package server

import (
	"net/http"
	"time"

	"blog/internal/access"
	"blog/internal/models"
)

func (s *Server) handleMemoList(w http.ResponseWriter, r *http.Request, user *models.User) {
	viewer := viewerOf(user)
	filter := models.MemoFilter(r.URL.Query().Get("category"))
	total, err := models.CountMemos(s.DB, user.ID, filter)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	p := newPager(r, s.cfg.PageSize, total)

	memos, err := models.ListMemos(s.DB, user.ID, models.MemoListOptions{
		Filter: filter,
		Limit:  p.size,
		Offset: p.offset(),
	})
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	current := string(filter)
	if current == "" {
		current = "all"
	}
	data := map[string]any{
		"User":            user,
		"Memos":           access.FilterListing(memos, viewer),
		"Categories":      models.MemoCategories,
		"CurrentCategory": current,
		"Filter":          string(filter),
		"Now":             time.Now(),
	}
	p.fill(data)
	s.render(w, "memo_list", data)
}

func (s *Server) handleNewMemoForm(w http.ResponseWriter, r *http.Request, user *models.User) {
	s.render(w, "memo_form", map[string]any{
		"User":            user,
		"Heading":         "New memo",
		"Action":          "/memos/new",
		"Categories":      models.MemoCategories,
		"CurrentCategory": "",
	})
}

func (s *Server) handleCreateMemo(w http.ResponseWriter, r *http.Request, user *models.User) {
	form := parseMemoForm(r)
	if err := validateForm(form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	memo := &models.Memo{Title: form.Title, Content: form.Content, Category: form.category()}
	if !s.allow(w, r, "memo.create", access.AssignOwner(memo, viewerOf(user))) {
		return
	}
	if err := models.CreateMemo(s.DB, memo); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/memos/"+itoa(memo.ID), http.StatusSeeOther)
}

func (s *Server) handleMemo(w http.ResponseWriter, r *http.Request, user *models.User) {
	memo, err := models.GetMemo(s.DB, urlID(r))
	if !authorize(s, w, r, "memo.read", access.Read, viewerOf(user), memo, err) {
		return
	}
	s.render(w, "memo", map[string]any{"User": user, "Memo": memo})
}

func (s *Server) handleEditMemoForm(w http.ResponseWriter, r *http.Request, user *models.User) {
	memo, err := models.GetMemo(s.DB, urlID(r))
	if !authorize(s, w, r, "memo.update", access.Write, viewerOf(user), memo, err) {
		return
	}
	current := ""
	if memo.Category != nil {
		current = string(*memo.Category)
	}
	s.render(w, "memo_form", map[string]any{
		"User":            user,
		"Memo":            memo,
		"Heading":         "Edit memo",
		"Action":          "/memos/" + itoa(memo.ID) + "/edit",
		"Categories":      models.MemoCategories,
		"CurrentCategory": current,
	})
}

func (s *Server) handleUpdateMemo(w http.ResponseWriter, r *http.Request, user *models.User) {
	memo, err := models.GetMemo(s.DB, urlID(r))
	if !authorize(s, w, r, "memo.update", access.Write, viewerOf(user), memo, err) {
		return
	}
	form := parseMemoForm(r)
	if err := validateForm(form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	memo.Title = form.Title
	memo.Content = form.Content
	memo.Category = form.category()
	if err := models.UpdateMemo(s.DB, memo); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/memos/"+itoa(memo.ID), http.StatusSeeOther)
}

func (s *Server) handleDeleteMemo(w http.ResponseWriter, r *http.Request, user *models.User) {
	memo, err := models.GetMemo(s.DB, urlID(r))
	if !authorize(s, w, r, "memo.delete", access.Write, viewerOf(user), memo, err) {
		return
	}
	if err := models.DeleteMemo(s.DB, memo.ID); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/memos", http.StatusSeeOther)
}
